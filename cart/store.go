// Package cart maintains the shopping cart as local durable state,
// independent of the server session. Every mutation is persisted before it
// returns, so no two mutations can interleave their writes.
package cart

import (
	"errors"
	"strconv"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/sliceworks/pizzactl/domain"
	"github.com/sliceworks/pizzactl/store"
)

// Store owns the cart line items. Totals and counts are derived from the
// lines on every read, never stored redundantly.
type Store struct {
	mu    sync.Mutex
	kv    store.Store
	lines []domain.CartLine
	log   zerolog.Logger
}

// NewStore loads the persisted cart, defaulting to an empty cart on any
// read or decode failure.
func NewStore(kv store.Store, logger zerolog.Logger) *Store {
	s := &Store{kv: kv, log: logger}
	var lines []domain.CartLine
	if err := kv.Get(store.KeyCart, &lines); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.Warn().Err(err).Msg("discarding unreadable persisted cart")
		}
		lines = nil
	}
	s.lines = lines
	return s
}

// Add puts one unit of p into the cart. Re-adding a product already in the
// cart increments its quantity instead of appending a duplicate line.
// Products without an ID are ignored.
func (s *Store) Add(p domain.Pizza, size domain.Size) {
	if p.ID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == p.ID {
			s.lines[i].Quantity++
			s.persistLocked()
			return
		}
	}
	s.lines = append(s.lines, domain.CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Size:      size,
		Quantity:  1,
	})
	s.persistLocked()
}

// Remove deletes every line matching productID.
func (s *Store) Remove(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.lines[:0]
	for _, l := range s.lines {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	s.lines = kept
	s.persistLocked()
}

// SetQuantity parses raw as an integer and sets the matching line's
// quantity. Non-integer or non-positive values are ignored, as are IDs not
// in the cart.
func (s *Store) SetQuantity(productID, raw string) {
	qty, err := strconv.Atoi(raw)
	if err != nil || qty < 1 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Quantity = qty
			s.persistLocked()
			return
		}
	}
}

// Clear empties the cart. Invoked after successful order placement.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	s.persistLocked()
}

// Lines returns a copy of the current cart lines.
func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Total is the sum of unit price times quantity across all lines.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Count is the sum of quantities across all lines.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, l := range s.lines {
		count += l.Quantity
	}
	return count
}

func (s *Store) persistLocked() {
	lines := s.lines
	if lines == nil {
		lines = []domain.CartLine{}
	}
	if err := s.kv.Set(store.KeyCart, lines); err != nil {
		s.log.Error().Err(err).Msg("failed to persist cart")
	}
}
