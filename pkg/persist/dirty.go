package persist

import (
	"sync"
	"time"
)

// Dirty tracks the dirty-flag/debounce discipline required of every
// persistable entity: set on mutation, cleared on successful flush, and
// flushed on tick only after the debounce window has elapsed since the
// last change.
type Dirty struct {
	mu          sync.Mutex
	dirty       bool
	lastChanged time.Time
	debounce    time.Duration
}

// NewDirty returns a Dirty tracker that waits debounce after the last
// mutation before ShouldFlush reports true.
func NewDirty(debounce time.Duration) *Dirty {
	return &Dirty{debounce: debounce}
}

// Mark records a mutation. Immediately afterwards IsDirty() == true.
func (d *Dirty) Mark() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dirty = true
	d.lastChanged = time.Now()
}

// IsDirty reports whether a mutation has occurred since the last Clear.
func (d *Dirty) IsDirty() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dirty
}

// ShouldFlush reports whether the entity is dirty AND the debounce window
// has elapsed since the last change. The tick handler calls this once
// per tick for every persistable entity.
func (d *Dirty) ShouldFlush(now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dirty && now.Sub(d.lastChanged) >= d.debounce
}

// Clear marks the entity clean after a successful flush.
func (d *Dirty) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dirty = false
}
