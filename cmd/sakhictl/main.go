// main.go - sakhictl: run the intent resolver and receipt extractor from a terminal

package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
