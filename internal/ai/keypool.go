// keypool.go - Rotating pool of API keys for one provider

package ai

import "sync"

// KeyPool is an ordered, non-empty list of API keys with a cursor marking
// the key to try first. The cursor only moves through Rotate, advanceFrom,
// markCurrent and restore, all under mu.
type KeyPool struct {
	mu     sync.Mutex
	keys   []string
	cursor int
}

// NewKeyPool returns a pool over keys, or nil when keys is empty.
func NewKeyPool(keys ...string) *KeyPool {
	if len(keys) == 0 {
		return nil
	}
	cp := make([]string, len(keys))
	copy(cp, keys)
	return &KeyPool{keys: cp}
}

// Len returns the number of keys.
func (p *KeyPool) Len() int {
	return len(p.keys)
}

// Cursor returns the index of the key that will be tried first.
func (p *KeyPool) Cursor() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor
}

// Rotate advances the cursor cyclically and returns the new index.
func (p *KeyPool) Rotate() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cursor = (p.cursor + 1) % len(p.keys)
	return p.cursor
}

// key returns the key at index i.
func (p *KeyPool) key(i int) string {
	return p.keys[i%len(p.keys)]
}

// advanceFrom rotates past a failed key, but only if no concurrent caller
// has already moved the cursor away from it.
func (p *KeyPool) advanceFrom(failed int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cursor == failed {
		p.cursor = (failed + 1) % len(p.keys)
	}
}

// markCurrent makes the key that just succeeded the first choice.
func (p *KeyPool) markCurrent(i int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cursor = i % len(p.keys)
}

// restore puts the cursor back after every key failed in one call, so a
// full outage does not leave the pool pointing at an arbitrary key.
func (p *KeyPool) restore(i int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cursor = i % len(p.keys)
}
