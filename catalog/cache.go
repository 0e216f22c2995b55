// SPDX-License-Identifier: EPL-2.0

package catalog

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/ik5/padbank/debug"
)

// Lister lists presets. *Client implements it.
type Lister interface {
	List(ctx context.Context, q Query) ([]Preset, error)
}

// CacheState is the lifecycle of a Cache.
type CacheState int

const (
	Empty CacheState = iota
	Populated
	Refreshed
)

func (s CacheState) String() string {
	switch s {
	case Populated:
		return "populated"
	case Refreshed:
		return "refreshed"
	default:
		return "empty"
	}
}

// Cache holds the last preset listing. A failed refresh keeps the
// previous listing.
type Cache struct {
	src   Lister
	query Query

	mu      sync.RWMutex
	presets []Preset
	state   CacheState
}

func NewCache(src Lister, q Query) *Cache {
	return &Cache{src: src, query: q}
}

// Refresh fetches the listing again.
func (c *Cache) Refresh(ctx context.Context) error {
	presets, err := c.src.List(ctx, c.query)
	if err != nil {
		debug.Log("catalog", "refresh: %v", err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.presets = presets
	if c.state == Empty {
		c.state = Populated
	} else {
		c.state = Refreshed
	}
	return nil
}

func (c *Cache) State() CacheState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.state
}

// Presets returns a copy of the listing.
func (c *Cache) Presets() []Preset {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.presets)
}

// Len is the number of cached presets.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.presets)
}

// At returns the preset at menu index i.
func (c *Cache) At(i int) (Preset, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.state == Empty {
		return Preset{}, ErrNotLoaded
	}
	if i < 0 || i >= len(c.presets) {
		return Preset{}, fmt.Errorf("%w: index %d", ErrNotFound, i)
	}
	return c.presets[i], nil
}

// ByName returns the preset called name.
func (c *Cache) ByName(name string) (Preset, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.state == Empty {
		return Preset{}, ErrNotLoaded
	}
	for _, p := range c.presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}
