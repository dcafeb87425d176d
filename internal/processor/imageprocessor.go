// imageprocessor.go - Receipt photo preprocessing for better OCR accuracy

package processor

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"
	"strings"

	"github.com/disintegration/imaging"
)

// DefaultMaxDimension caps the longest side of a receipt photo sent to OCR.
const DefaultMaxDimension = 2500

// ImagePreprocessor resizes and enhances receipt photos before OCR.
type ImagePreprocessor struct {
	MaxDimension int
}

// NewImagePreprocessor creates a preprocessor. A non-positive maxDimension
// uses DefaultMaxDimension.
func NewImagePreprocessor(maxDimension int) *ImagePreprocessor {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	return &ImagePreprocessor{MaxDimension: maxDimension}
}

// Process decodes an uploaded image, applies adaptive enhancement based on
// its measured quality and re-encodes it. PDFs are returned untouched.
// Returns the processed bytes and their mime type.
func (p *ImagePreprocessor) Process(data []byte, mimeType string) ([]byte, string, error) {
	if strings.EqualFold(mimeType, "application/pdf") {
		return data, "application/pdf", nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	img = p.resize(img)

	switch score := analyzeImageQuality(img); {
	case score < 50:
		img = applyAggressiveEnhancement(img)
	case score < 75:
		img = applyStandardEnhancement(img)
	default:
		img = applyLightEnhancement(img)
	}
	img = imaging.Sharpen(img, 1.0)

	var buf bytes.Buffer
	outType := "image/jpeg"
	if strings.EqualFold(mimeType, "image/png") {
		err = png.Encode(&buf, img)
		outType = "image/png"
	} else {
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95})
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode processed image: %w", err)
	}

	return buf.Bytes(), outType, nil
}

func (p *ImagePreprocessor) resize(img image.Image) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= p.MaxDimension && height <= p.MaxDimension {
		return img
	}
	if width > height {
		return imaging.Resize(img, p.MaxDimension, 0, imaging.Lanczos)
	}
	return imaging.Resize(img, 0, p.MaxDimension, imaging.Lanczos)
}

// analyzeImageQuality returns a 0-100 score from sampled brightness and contrast.
func analyzeImageQuality(img image.Image) float64 {
	bounds := img.Bounds()

	var totalBrightness float64
	minBrightness := 255.0
	maxBrightness := 0.0
	pixelCount := 0

	// Sample every 10th pixel
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 10 {
		for x := bounds.Min.X; x < bounds.Max.X; x += 10 {
			r, g, b, _ := img.At(x, y).RGBA()
			brightness := (float64(r>>8) + float64(g>>8) + float64(b>>8)) / 3.0

			totalBrightness += brightness
			minBrightness = math.Min(minBrightness, brightness)
			maxBrightness = math.Max(maxBrightness, brightness)
			pixelCount++
		}
	}
	if pixelCount == 0 {
		return 0
	}

	avgBrightness := totalBrightness / float64(pixelCount)
	contrast := maxBrightness - minBrightness

	// Ideal: avgBrightness = 128, contrast = 200+
	brightnessScore := 100.0 - math.Abs(avgBrightness-128.0)/1.28
	contrastScore := math.Min(contrast/2.0, 100.0)

	return brightnessScore*0.4 + contrastScore*0.6
}

func applyLightEnhancement(img image.Image) image.Image {
	result := imaging.Sharpen(img, 2.0)
	result = imaging.AdjustContrast(result, 30)
	result = imaging.Grayscale(result)
	result = imaging.AdjustContrast(result, 20)
	return imaging.AdjustGamma(result, 1.05)
}

func applyStandardEnhancement(img image.Image) image.Image {
	result := imaging.Sharpen(img, 3.0)
	result = imaging.AdjustContrast(result, 45)
	result = imaging.AdjustBrightness(result, 15)
	result = imaging.Grayscale(result)
	result = imaging.AdjustContrast(result, 35)
	return imaging.AdjustGamma(result, 1.15)
}

// applyAggressiveEnhancement is for dark, low-contrast thermal receipts.
func applyAggressiveEnhancement(img image.Image) image.Image {
	result := imaging.Sharpen(img, 4.0)
	result = imaging.AdjustContrast(result, 60)
	result = imaging.AdjustBrightness(result, 25)
	result = imaging.Grayscale(result)
	result = imaging.AdjustContrast(result, 55)
	result = imaging.AdjustGamma(result, 1.3)
	// blur + sharpen removes speckle noise
	result = imaging.Blur(result, 0.5)
	result = imaging.Sharpen(result, 2.5)
	return imaging.AdjustContrast(result, 20)
}
