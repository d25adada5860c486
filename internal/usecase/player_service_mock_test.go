package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/liigadoku/liigadoku-api/internal/domain/player"
	"github.com/liigadoku/liigadoku-api/internal/platform/logging"
)

type playerRepositoryMock struct {
	mock.Mock
}

func (m *playerRepositoryMock) PutBatch(ctx context.Context, players []player.Player) error {
	args := m.Called(ctx, players)
	return args.Error(0)
}

func (m *playerRepositoryMock) GetByPerson(ctx context.Context, person string) (player.Player, bool, error) {
	args := m.Called(ctx, person)
	return args.Get(0).(player.Player), args.Bool(1), args.Error(2)
}

type directoryMock struct {
	mock.Mock
}

func (m *directoryMock) PutBatch(ctx context.Context, entries []player.ShortVersion) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *directoryMock) GetByPerson(ctx context.Context, person string) (player.ShortVersion, bool, error) {
	args := m.Called(ctx, person)
	return args.Get(0).(player.ShortVersion), args.Bool(1), args.Error(2)
}

func (m *directoryMock) ListAll(ctx context.Context) ([]player.ShortVersion, error) {
	args := m.Called(ctx)
	entries, _ := args.Get(0).([]player.ShortVersion)
	return entries, args.Error(1)
}

func TestPlayerService_GetByPerson_UsesRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := &playerRepositoryMock{}
	dir := &directoryMock{}
	svc := NewPlayerService(repo, dir, nil, logging.NewNop())

	want := player.Player{Person: "person-1", Name: "Teemu Testaaja", Teams: []string{"TPS"}}
	repo.
		On("GetByPerson", mock.MatchedBy(func(v context.Context) bool { return v != nil }), "person-1").
		Return(want, true, nil).
		Once()

	got, err := svc.GetByPerson(ctx, "person-1")
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if got.Name != want.Name {
		t.Fatalf("unexpected player: got=%s want=%s", got.Name, want.Name)
	}
	repo.AssertExpectations(t)
}

func TestPlayerService_ListAll_WrapsRepositoryError(t *testing.T) {
	t.Parallel()

	repo := &playerRepositoryMock{}
	dir := &directoryMock{}
	svc := NewPlayerService(repo, dir, nil, logging.NewNop())

	dir.
		On("ListAll", mock.MatchedBy(func(v context.Context) bool { return v != nil })).
		Return(nil, errors.New("directory unavailable")).
		Once()

	if _, err := svc.ListAll(context.Background()); err == nil {
		t.Fatalf("expected directory error to propagate")
	}
	dir.AssertExpectations(t)
}
