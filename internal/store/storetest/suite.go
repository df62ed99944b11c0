package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cakeshelf/cakeshelf/internal/model"
	"github.com/cakeshelf/cakeshelf/internal/store"
)

func draft(name, comment, imageURL string, yum int) *model.Cake {
	return &model.Cake{Name: name, Comment: comment, ImageURL: imageURL, YumFactor: yum}
}

// Run exercises a compliance suite against a store.Store implementation.
// makeStore must return a clean, isolated store per test.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	t.Run("CreateAndGet", func(t *testing.T) {
		s := makeStore(t)
		ctx := context.Background()

		c, err := s.Create(ctx, draft("Lemon Drizzle", "Zesty and moist", "https://x.test/l.jpg", 4))
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if c.ID == "" {
			t.Fatal("Create: empty id")
		}
		if c.CreatedAt.IsZero() || c.UpdatedAt.IsZero() {
			t.Fatalf("Create: timestamps not set: %+v", c)
		}

		got, err := s.GetByID(ctx, c.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.Name != "Lemon Drizzle" || got.Comment != "Zesty and moist" || got.YumFactor != 4 {
			t.Fatalf("GetByID: got %+v", got)
		}
	})

	t.Run("GetByNameCaseInsensitive", func(t *testing.T) {
		s := makeStore(t)
		ctx := context.Background()

		c, err := s.Create(ctx, draft("Carrot Cake", "Surprisingly good", "https://x.test/c.jpg", 5))
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		got, err := s.GetByName(ctx, "cArRoT cAkE")
		if err != nil {
			t.Fatalf("GetByName: %v", err)
		}
		if got.ID != c.ID {
			t.Fatalf("GetByName: got id %s, want %s", got.ID, c.ID)
		}
		if _, err := s.GetByName(ctx, "No Such Cake"); !errors.Is(err, model.ErrNotFound) {
			t.Fatalf("GetByName miss: err=%v, want ErrNotFound", err)
		}
	})

	t.Run("UniqueIndexRejectsDuplicateName", func(t *testing.T) {
		s := makeStore(t)
		ctx := context.Background()

		if _, err := s.Create(ctx, draft("Victoria Sponge", "A proper classic", "https://x.test/v.jpg", 3)); err != nil {
			t.Fatalf("Create: %v", err)
		}
		_, err := s.Create(ctx, draft("VICTORIA SPONGE", "Different case, same cake", "https://x.test/v2.jpg", 2))
		if !errors.Is(err, model.ErrDuplicateName) {
			t.Fatalf("duplicate Create: err=%v, want ErrDuplicateName", err)
		}
	})

	t.Run("ListProjectionAndOrdering", func(t *testing.T) {
		s := makeStore(t)
		ctx := context.Background()

		a, err := s.Create(ctx, draft("Cake A", "First in, last out", "https://x.test/a.jpg", 1))
		if err != nil {
			t.Fatalf("Create a: %v", err)
		}
		time.Sleep(5 * time.Millisecond) // ensure monotonic creation time ordering
		b, err := s.Create(ctx, draft("Cake B", "Middle of the pack", "https://x.test/b.jpg", 2))
		if err != nil {
			t.Fatalf("Create b: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
		c, err := s.Create(ctx, draft("Cake C", "Freshest first", "https://x.test/c.jpg", 3))
		if err != nil {
			t.Fatalf("Create c: %v", err)
		}

		lst, err := s.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(lst) != 3 {
			t.Fatalf("List: n=%d, want 3", len(lst))
		}
		wantIDs := []string{c.ID, b.ID, a.ID}
		for i, want := range wantIDs {
			if lst[i].ID != want {
				t.Fatalf("List order: pos %d got %s, want %s", i, lst[i].ID, want)
			}
		}
		if lst[0].Name != "Cake C" || lst[0].ImageURL != "https://x.test/c.jpg" {
			t.Fatalf("List projection: got %+v", lst[0])
		}
	})

	t.Run("UpdateRefreshesUpdatedAt", func(t *testing.T) {
		s := makeStore(t)
		ctx := context.Background()

		c, err := s.Create(ctx, draft("Battenberg", "Pink and yellow squares", "https://x.test/bb.jpg", 3))
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		time.Sleep(5 * time.Millisecond)

		c.YumFactor = 5
		upd, err := s.Update(ctx, c)
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if upd.YumFactor != 5 {
			t.Fatalf("Update: yumFactor=%d, want 5", upd.YumFactor)
		}
		if !upd.CreatedAt.Equal(c.CreatedAt) {
			t.Fatalf("Update: createdAt changed from %v to %v", c.CreatedAt, upd.CreatedAt)
		}
		if !upd.UpdatedAt.After(c.UpdatedAt) {
			t.Fatalf("Update: updatedAt not refreshed: %v <= %v", upd.UpdatedAt, c.UpdatedAt)
		}

		missing := *c
		missing.ID = "7f000000-0000-4000-8000-000000000000"
		if _, err := s.Update(ctx, &missing); !errors.Is(err, model.ErrNotFound) {
			t.Fatalf("Update missing: err=%v, want ErrNotFound", err)
		}
	})

	t.Run("DeleteThenGet", func(t *testing.T) {
		s := makeStore(t)
		ctx := context.Background()

		c, err := s.Create(ctx, draft("Madeira", "Dense but dependable", "https://x.test/m.jpg", 2))
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if err := s.Delete(ctx, c.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := s.GetByID(ctx, c.ID); !errors.Is(err, model.ErrNotFound) {
			t.Fatalf("GetByID after delete: err=%v, want ErrNotFound", err)
		}
		if err := s.Delete(ctx, c.ID); !errors.Is(err, model.ErrNotFound) {
			t.Fatalf("second Delete: err=%v, want ErrNotFound", err)
		}
		// Name becomes free again once the record is gone.
		if _, err := s.Create(ctx, draft("Madeira", "Back by popular demand", "https://x.test/m2.jpg", 3)); err != nil {
			t.Fatalf("Create after delete: %v", err)
		}
	})
}
