package usecase

import (
	"context"
	"testing"

	"github.com/atelierops/backoffice/internal/exception"
	"github.com/atelierops/backoffice/internal/exception/dto"
	"github.com/atelierops/backoffice/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRepo struct {
	exceptions map[string]*model.OrderException
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{exceptions: map[string]*model.OrderException{}}
}

func (f *fakeRepo) Create(_ context.Context, e *model.OrderException) error {
	cp := *e
	f.exceptions[e.ID] = &cp
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*model.OrderException, error) {
	e, ok := f.exceptions[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (f *fakeRepo) FindAll(_ context.Context, _ *dto.ExceptionFilters) ([]model.OrderException, int, error) {
	out := []model.OrderException{}
	for _, e := range f.exceptions {
		out = append(out, *e)
	}
	return out, len(out), nil
}

func (f *fakeRepo) FindByOrder(_ context.Context, orderID string) ([]model.OrderException, error) {
	out := []model.OrderException{}
	for _, e := range f.exceptions {
		if e.OrderID == orderID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, e *model.OrderException) error {
	cp := *e
	f.exceptions[e.ID] = &cp
	return nil
}

func create(t *testing.T, uc exception.UseCase) *model.OrderException {
	t.Helper()
	e, err := uc.Create(context.Background(), &dto.CreateExceptionInput{
		OrderID:       "order-1",
		ExceptionType: "sizing_issue",
		Description:   "jacket sleeves two inches short",
	})
	require.NoError(t, err)
	return e
}

func TestCreateDefaults(t *testing.T) {
	uc := NewExceptionUseCase(newFakeRepo(), zap.NewNop())
	e := create(t, uc)

	assert.Equal(t, model.ExceptionOpen, e.Status)
	assert.Equal(t, model.PriorityMedium, e.Priority, "priority defaults to medium")
	assert.Nil(t, e.ResolutionNotes)

	_, err := uc.Create(context.Background(), &dto.CreateExceptionInput{
		OrderID:       "order-1",
		ExceptionType: "sizing_issue",
		Priority:      "blazing",
	})
	assert.ErrorIs(t, err, exception.ErrInvalidPriority)
}

func TestResolveRequiresNotes(t *testing.T) {
	repo := newFakeRepo()
	uc := NewExceptionUseCase(repo, zap.NewNop())
	e := create(t, uc)

	for _, notes := range []string{"", "   ", "\t\n"} {
		_, err := uc.Resolve(context.Background(), e.ID, notes)
		assert.ErrorIs(t, err, exception.ErrNotesRequired)
	}

	// Rejected before any store write.
	stored := repo.exceptions[e.ID]
	assert.Equal(t, model.ExceptionOpen, stored.Status)
	assert.Nil(t, stored.ResolutionNotes)

	resolved, err := uc.Resolve(context.Background(), e.ID, "  replaced jacket  ")
	require.NoError(t, err)
	assert.Equal(t, model.ExceptionResolved, resolved.Status)
	require.NotNil(t, resolved.ResolutionNotes)
	assert.Equal(t, "replaced jacket", *resolved.ResolutionNotes)
}

func TestResolvedIsTerminal(t *testing.T) {
	uc := NewExceptionUseCase(newFakeRepo(), zap.NewNop())
	e := create(t, uc)

	_, err := uc.Resolve(context.Background(), e.ID, "done")
	require.NoError(t, err)

	_, err = uc.UpdateStatus(context.Background(), e.ID, model.ExceptionInProgress)
	assert.ErrorIs(t, err, exception.ErrInvalidTransition)

	_, err = uc.Resolve(context.Background(), e.ID, "done again")
	assert.ErrorIs(t, err, exception.ErrInvalidTransition)
}

func TestUpdateStatusGuards(t *testing.T) {
	uc := NewExceptionUseCase(newFakeRepo(), zap.NewNop())
	e := create(t, uc)

	// Resolution must go through Resolve.
	_, err := uc.UpdateStatus(context.Background(), e.ID, model.ExceptionResolved)
	assert.ErrorIs(t, err, exception.ErrNotesRequired)

	_, err = uc.UpdateStatus(context.Background(), e.ID, "shrugged")
	assert.ErrorIs(t, err, exception.ErrInvalidStatus)

	got, err := uc.UpdateStatus(context.Background(), e.ID, model.ExceptionInProgress)
	require.NoError(t, err)
	assert.Equal(t, model.ExceptionInProgress, got.Status)

	got, err = uc.UpdateStatus(context.Background(), e.ID, model.ExceptionEscalated)
	require.NoError(t, err)
	assert.Equal(t, model.ExceptionEscalated, got.Status)

	// Escalated can only move to resolved.
	_, err = uc.UpdateStatus(context.Background(), e.ID, model.ExceptionInProgress)
	assert.ErrorIs(t, err, exception.ErrInvalidTransition)

	got, err = uc.Resolve(context.Background(), e.ID, "expedited remake shipped")
	require.NoError(t, err)
	assert.Equal(t, model.ExceptionResolved, got.Status)
}

func TestUpdateStatusUnknownID(t *testing.T) {
	uc := NewExceptionUseCase(newFakeRepo(), zap.NewNop())
	_, err := uc.UpdateStatus(context.Background(), "missing", model.ExceptionInProgress)
	assert.ErrorIs(t, err, exception.ErrNotFound)
}
