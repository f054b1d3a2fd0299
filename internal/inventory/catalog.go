package inventory

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrDuplicateID     = errors.New("duplicate item id")
	ErrInvalidItem     = errors.New("invalid item")
)

// Resolver is what the fulfillment pipeline needs from a catalog.
type Resolver interface {
	Lookup(name string) *Match
	Reserve(itemID string, quantity int) (Reservation, error)
}

// Catalog owns the in-memory stock. Items are only reachable through
// Lookup and Reserve, both of which hand out copies.
type Catalog struct {
	threshold float64

	mu    sync.RWMutex
	items []Item
	index map[string]int
}

type Option func(*Catalog)

// WithAcceptanceThreshold sets the minimum score Lookup accepts.
func WithAcceptanceThreshold(t float64) Option {
	return func(c *Catalog) {
		c.threshold = t
	}
}

func NewCatalog(items []Item, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		threshold: DefaultAcceptanceThreshold,
		items:     make([]Item, 0, len(items)),
		index:     make(map[string]int, len(items)),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.threshold <= 0 || c.threshold > 1 {
		return nil, fmt.Errorf("acceptance threshold %v out of range (0,1]", c.threshold)
	}

	for _, it := range items {
		it.ID = strings.TrimSpace(it.ID)
		if it.ID == "" || strings.TrimSpace(it.Name) == "" {
			return nil, fmt.Errorf("%w: id and name are required (%+v)", ErrInvalidItem, it)
		}
		if it.Available < 0 {
			return nil, fmt.Errorf("%w: %s has negative quantity %d", ErrInvalidItem, it.ID, it.Available)
		}
		if _, dup := c.index[it.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, it.ID)
		}
		c.index[it.ID] = len(c.items)
		c.items = append(c.items, it.clone())
	}
	return c, nil
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Lookup returns the best-scoring item for name, or nil when nothing
// reaches the acceptance threshold. Ties go to the earlier item.
func (c *Catalog) Lookup(name string) *Match {
	if Normalize(name) == "" {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	bestIdx := -1
	bestScore := 0.0
	for i, it := range c.items {
		s := itemScore(it, name)
		if bestIdx == -1 || s > bestScore {
			bestIdx, bestScore = i, s
		}
	}
	if bestIdx == -1 || bestScore < c.threshold {
		return nil
	}
	return &Match{Item: c.items[bestIdx].clone(), Score: bestScore}
}

// Reserve decrements the item's stock by quantity if enough is available.
// The check and the decrement happen under the same write lock.
func (c *Catalog) Reserve(itemID string, quantity int) (Reservation, error) {
	if quantity <= 0 {
		return Reservation{}, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[itemID]
	if !ok {
		return Reservation{Succeeded: false, Remaining: 0}, nil
	}
	it := &c.items[i]
	if it.Available < quantity {
		return Reservation{Succeeded: false, Remaining: it.Available}, nil
	}
	it.Available -= quantity
	return Reservation{Succeeded: true, Remaining: it.Available}, nil
}
