package usecase

import (
	"context"
	"testing"

	"github.com/atelierops/backoffice/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRepo struct {
	sizeCalls int
}

func (f *fakeRepo) ListSizes(_ context.Context) ([]model.Size, error) {
	f.sizeCalls++
	return []model.Size{
		{ID: "1", Label: "38R", SizingCategory: "suits", SortOrder: 1},
		{ID: "2", Label: "40R", SizingCategory: "suits", SortOrder: 2},
	}, nil
}

func (f *fakeRepo) ListColors(_ context.Context) ([]model.Color, error) {
	return []model.Color{{ID: "1", Label: "Navy", HexCode: "#1f2a44", SortOrder: 1}}, nil
}

func TestSizesDegradesWithoutCache(t *testing.T) {
	repo := &fakeRepo{}
	uc := NewReferenceUseCase(repo, nil, zap.NewNop())

	sizes, err := uc.Sizes(context.Background())
	require.NoError(t, err)
	require.Len(t, sizes, 2)
	assert.Equal(t, "38R", sizes[0].Label)

	// Without a cache every call hits the store.
	_, err = uc.Sizes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.sizeCalls)

	// Invalidate is a no-op without a cache.
	uc.Invalidate(context.Background())
}

func TestColorsDegradesWithoutCache(t *testing.T) {
	uc := NewReferenceUseCase(&fakeRepo{}, nil, zap.NewNop())

	colors, err := uc.Colors(context.Background())
	require.NoError(t, err)
	require.Len(t, colors, 1)
	assert.Equal(t, "Navy", colors[0].Label)
}
