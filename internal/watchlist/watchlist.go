// Package watchlist persists the user's tracked symbols in the local
// key-value store.
package watchlist

import (
	"errors"
	"fmt"

	"stockpredict/internal/kvstore"
	"stockpredict/internal/market"
)

const storageKey = "stockpredict/watchlist"

// Store is an ordered watchlist held under a single key: newest first,
// one entry per symbol, entries are never mutated in place.
type Store struct {
	kv *kvstore.Store
}

// NewStore wraps a key-value store.
func NewStore(kv *kvstore.Store) *Store {
	return &Store{kv: kv}
}

// List returns the watchlist, newest first. A missing key is an empty
// list, not an error.
func (s *Store) List() ([]market.WatchlistItem, error) {
	var items []market.WatchlistItem
	if err := s.kv.Get(storageKey, &items); err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load watchlist: %w", err)
	}
	return items, nil
}

// Add prepends item unless its symbol is already present, and returns
// the resulting list. Adding an existing symbol is a no-op.
func (s *Store) Add(item market.WatchlistItem) ([]market.WatchlistItem, error) {
	items, err := s.List()
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.Symbol == item.Symbol {
			return items, nil
		}
	}
	items = append([]market.WatchlistItem{item}, items...)
	if err := s.kv.Set(storageKey, items); err != nil {
		return nil, fmt.Errorf("save watchlist: %w", err)
	}
	return items, nil
}

// Remove drops the entry for symbol and returns the resulting list.
func (s *Store) Remove(symbol string) ([]market.WatchlistItem, error) {
	items, err := s.List()
	if err != nil {
		return nil, err
	}
	filtered := make([]market.WatchlistItem, 0, len(items))
	for _, it := range items {
		if it.Symbol != symbol {
			filtered = append(filtered, it)
		}
	}
	if err := s.kv.Set(storageKey, filtered); err != nil {
		return nil, fmt.Errorf("save watchlist: %w", err)
	}
	return filtered, nil
}

// Contains reports whether symbol is on the watchlist.
func (s *Store) Contains(symbol string) (bool, error) {
	items, err := s.List()
	if err != nil {
		return false, err
	}
	for _, it := range items {
		if it.Symbol == symbol {
			return true, nil
		}
	}
	return false, nil
}

// Clear removes the whole list.
func (s *Store) Clear() error {
	return s.kv.Delete(storageKey)
}
