package services

import (
	"context"
	"errors"

	"github.com/cakeshelf/cakeshelf/internal/model"
	"github.com/cakeshelf/cakeshelf/internal/store"
	"github.com/cakeshelf/cakeshelf/internal/validate"
)

const (
	msgCakeNotFound  = "Cake not found"
	msgDuplicateName = "A cake with this name already exists"
)

// CakeService orchestrates validation, uniqueness checks and store operations
// for the five cake operations.
type CakeService struct {
	store store.Store
}

func NewCakeService(s store.Store) *CakeService { return &CakeService{store: s} }

// List returns all cakes projected to id/name/imageUrl, newest first.
func (s *CakeService) List(ctx context.Context) ([]*model.CakeSummary, error) {
	return s.store.List(ctx)
}

// Get returns the full record for id.
func (s *CakeService) Get(ctx context.Context, id string) (*model.Cake, error) {
	c, err := s.store.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return nil, NewNotFoundError(msgCakeNotFound)
	}
	return c, err
}

// Create persists a new cake from a fully validated draft.
//
// The name lookup ahead of the insert exists for the friendlier error; it is
// not atomic with the write, so two concurrent creates can both pass it. The
// store's case-insensitive unique index is the authoritative guard, and its
// violation maps to the same Conflict.
func (s *CakeService) Create(ctx context.Context, draft *model.CakeDraft) (*model.Cake, error) {
	if _, err := s.store.GetByName(ctx, *draft.Name); err == nil {
		return nil, NewConflictError("name", msgDuplicateName)
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	c := &model.Cake{
		Name:      *draft.Name,
		Comment:   *draft.Comment,
		ImageURL:  *draft.ImageURL,
		YumFactor: *draft.YumFactor,
	}
	out, err := s.store.Create(ctx, c)
	if errors.Is(err, model.ErrDuplicateName) {
		return nil, NewConflictError("name", msgDuplicateName)
	}
	return out, err
}

// Update applies the supplied fields of patch to the record with id,
// re-validates the resulting full record, and persists it with a refreshed
// updatedAt. Omitted fields are left untouched.
func (s *CakeService) Update(ctx context.Context, id string, patch *model.CakeDraft) (*model.Cake, error) {
	if patch.Name != nil {
		other, err := s.store.GetByName(ctx, *patch.Name)
		switch {
		case err == nil && other.ID != id:
			return nil, NewConflictError("name", msgDuplicateName)
		case err != nil && !errors.Is(err, model.ErrNotFound):
			return nil, err
		}
	}

	cur, err := s.store.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return nil, NewNotFoundError(msgCakeNotFound)
	}
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		cur.Name = *patch.Name
	}
	if patch.Comment != nil {
		cur.Comment = *patch.Comment
	}
	if patch.ImageURL != nil {
		cur.ImageURL = *patch.ImageURL
	}
	if patch.YumFactor != nil {
		cur.YumFactor = *patch.YumFactor
	}

	if violations := validate.Record(cur); len(violations) > 0 {
		return nil, NewValidationError(violations)
	}

	out, err := s.store.Update(ctx, cur)
	switch {
	case errors.Is(err, model.ErrDuplicateName):
		return nil, NewConflictError("name", msgDuplicateName)
	case errors.Is(err, model.ErrNotFound):
		return nil, NewNotFoundError(msgCakeNotFound)
	}
	return out, err
}

// Delete removes the record with id. Hard delete, no tombstone.
func (s *CakeService) Delete(ctx context.Context, id string) error {
	err := s.store.Delete(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return NewNotFoundError(msgCakeNotFound)
	}
	return err
}
