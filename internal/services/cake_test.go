package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/cakeshelf/cakeshelf/internal/model"
	"github.com/cakeshelf/cakeshelf/internal/store/sqlite"
)

func newTestService(t *testing.T) *CakeService {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.EnsureSchema(db))
	return NewCakeService(sqlite.NewWithDB(db))
}

func fullDraft(name string) *model.CakeDraft {
	comment := "A very good cake"
	imageURL := "https://example.com/cake.jpg"
	yum := 4
	return &model.CakeDraft{
		Name:      &name,
		Comment:   &comment,
		ImageURL:  &imageURL,
		YumFactor: &yum,
	}
}

func TestCakeService_CreateAssignsIdentityAndTimestamps(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cake, err := svc.Create(ctx, fullDraft("Victoria Sponge"))
	require.NoError(t, err)
	assert.NotEmpty(t, cake.ID)
	assert.False(t, cake.CreatedAt.IsZero())
	assert.True(t, cake.UpdatedAt.Equal(cake.CreatedAt))

	got, err := svc.Get(ctx, cake.ID)
	require.NoError(t, err)
	assert.Equal(t, cake.ID, got.ID)
	assert.Equal(t, "Victoria Sponge", got.Name)
}

func TestCakeService_CreateRejectsDuplicateNameCaseInsensitive(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, fullDraft("Victoria Sponge"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, fullDraft("VICTORIA SPONGE"))
	require.Error(t, err)
	ce, ok := AsConflictError(err)
	require.True(t, ok)
	assert.Equal(t, "name", ce.Field)
	assert.Equal(t, "A cake with this name already exists", ce.Message)
}

func TestCakeService_GetUnknownIdIsNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(context.Background(), "1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed")
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
	assert.Equal(t, "Cake not found", err.Error())
}

func TestCakeService_UpdatePartialPreservesOtherFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, fullDraft("Battenberg"))
	require.NoError(t, err)

	yum := 5
	updated, err := svc.Update(ctx, created.ID, &model.CakeDraft{YumFactor: &yum})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.YumFactor)
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.Comment, updated.Comment)
	assert.Equal(t, created.ImageURL, updated.ImageURL)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	assert.True(t, !updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestCakeService_UpdateNameConflictExcludesSelf(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, fullDraft("Madeira"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, fullDraft("Stollen"))
	require.NoError(t, err)

	// Renaming to its own name, case changed, is not a conflict.
	name := "MADEIRA"
	updated, err := svc.Update(ctx, a.ID, &model.CakeDraft{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "MADEIRA", updated.Name)

	// Renaming to another record's name is.
	name = "stollen"
	_, err = svc.Update(ctx, a.ID, &model.CakeDraft{Name: &name})
	require.Error(t, err)
	assert.True(t, IsConflictError(err))
}

func TestCakeService_UpdateUnknownIdIsNotFound(t *testing.T) {
	svc := newTestService(t)

	yum := 3
	_, err := svc.Update(context.Background(), "1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed", &model.CakeDraft{YumFactor: &yum})
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestCakeService_UpdateRevalidatesMergedRecord(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, fullDraft("Genoise"))
	require.NoError(t, err)

	comment := "abc"
	_, err = svc.Update(ctx, created.ID, &model.CakeDraft{Comment: &comment})
	require.Error(t, err)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	require.Len(t, ve.Violations, 1)
	assert.Equal(t, "comment", ve.Violations[0].Field)
}

func TestCakeService_DeleteThenOperationsNotFound(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, fullDraft("Eccles"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.True(t, IsNotFoundError(err))

	err = svc.Delete(ctx, created.ID)
	assert.True(t, IsNotFoundError(err))

	// The name is free again once the record is gone.
	_, err = svc.Create(ctx, fullDraft("Eccles"))
	assert.NoError(t, err)
}

func TestCakeService_ListProjectsNewestFirst(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		_, err := svc.Create(ctx, fullDraft(name))
		require.NoError(t, err)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Gamma", list[0].Name)
	assert.Equal(t, "Beta", list[1].Name)
	assert.Equal(t, "Alpha", list[2].Name)
}
