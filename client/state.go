package client

import (
	"context"
	"errors"
	"sync"
)

// Store is an in-memory cache over the gateway for UI consumption. It
// holds the last fetched list, an optional selected cake, a loading
// flag and the last error message. It is a cache, not a source of
// truth: successful calls replace or patch it in place, failed calls
// leave prior data intact and record a displayable error.
//
// Store does not serialize overlapping calls; if two operations race,
// the last response to land wins. Construct one per UI and inject it
// rather than sharing a package-level instance.
type Store struct {
	gateway *Client

	mu       sync.RWMutex
	cakes    []CakeSummary
	selected *Cake
	loading  bool
	errMsg   string
}

// Snapshot is a point-in-time copy of the Store's state, safe to read
// without holding any lock.
type Snapshot struct {
	Cakes    []CakeSummary
	Selected *Cake
	Loading  bool
	Err      string
}

// NewStore wraps a gateway client in a state container.
func NewStore(gateway *Client) *Store {
	return &Store{gateway: gateway}
}

// State returns a copy of the current cached state.
func (s *Store) State() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		Cakes:   make([]CakeSummary, len(s.cakes)),
		Loading: s.loading,
		Err:     s.errMsg,
	}
	copy(snap.Cakes, s.cakes)
	if s.selected != nil {
		sel := *s.selected
		snap.Selected = &sel
	}
	return snap
}

// FetchCakes refreshes the cached list from the server.
func (s *Store) FetchCakes(ctx context.Context) error {
	s.begin()
	cakes, err := s.gateway.ListCakes(ctx)
	if err != nil {
		s.fail(err, "Failed to fetch cakes")
		return err
	}
	s.mu.Lock()
	s.cakes = cakes
	s.loading = false
	s.mu.Unlock()
	return nil
}

// FetchCake loads one cake in full and makes it the selection.
func (s *Store) FetchCake(ctx context.Context, id string) error {
	s.begin()
	cake, err := s.gateway.GetCake(ctx, id)
	if err != nil {
		s.fail(err, "Failed to fetch cake")
		return err
	}
	s.mu.Lock()
	s.selected = cake
	s.loading = false
	s.mu.Unlock()
	return nil
}

// AddCake creates a cake and appends it to the cached list.
func (s *Store) AddCake(ctx context.Context, draft CakeDraft) (*Cake, error) {
	s.begin()
	cake, err := s.gateway.CreateCake(ctx, draft)
	if err != nil {
		s.fail(err, "Failed to add cake")
		return nil, err
	}
	s.mu.Lock()
	// New cakes sort first on the server, mirror that here.
	s.cakes = append([]CakeSummary{summaryOf(cake)}, s.cakes...)
	s.selected = cake
	s.loading = false
	s.mu.Unlock()
	return cake, nil
}

// UpdateCake applies a partial draft and patches the cached list entry
// in place by id.
func (s *Store) UpdateCake(ctx context.Context, id string, draft CakeDraft) (*Cake, error) {
	s.begin()
	cake, err := s.gateway.UpdateCake(ctx, id, draft)
	if err != nil {
		s.fail(err, "Failed to update cake")
		return nil, err
	}
	s.mu.Lock()
	for i := range s.cakes {
		if s.cakes[i].ID == cake.ID {
			s.cakes[i] = summaryOf(cake)
			break
		}
	}
	if s.selected != nil && s.selected.ID == cake.ID {
		s.selected = cake
	}
	s.loading = false
	s.mu.Unlock()
	return cake, nil
}

// DeleteCake removes a cake and drops it from the cached list.
func (s *Store) DeleteCake(ctx context.Context, id string) error {
	s.begin()
	if err := s.gateway.DeleteCake(ctx, id); err != nil {
		s.fail(err, "Failed to delete cake")
		return err
	}
	s.mu.Lock()
	for i := range s.cakes {
		if s.cakes[i].ID == id {
			s.cakes = append(s.cakes[:i], s.cakes[i+1:]...)
			break
		}
	}
	if s.selected != nil && s.selected.ID == id {
		s.selected = nil
	}
	s.loading = false
	s.mu.Unlock()
	return nil
}

func (s *Store) begin() {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()
}

func (s *Store) fail(err error, fallback string) {
	s.mu.Lock()
	s.errMsg = displayMessage(err, fallback)
	s.loading = false
	s.mu.Unlock()
}

func summaryOf(c *Cake) CakeSummary {
	return CakeSummary{ID: c.ID, Name: c.Name, ImageURL: c.ImageURL}
}

// displayMessage prefers the server-provided message when one exists,
// falling back to a generic per-operation message for transport errors.
func displayMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if len(apiErr.Violations) > 0 {
			return apiErr.Violations[0].Message
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
	}
	return fallback
}
