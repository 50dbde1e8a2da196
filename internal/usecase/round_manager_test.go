package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/wordstack-backend/internal/apperror"
	"github.com/rocketscienceinc/wordstack-backend/internal/entity"
	"github.com/rocketscienceinc/wordstack-backend/internal/scramble"
	"github.com/rocketscienceinc/wordstack-backend/internal/wordbank"
)

var errRedisDown = errors.New("redis down")

type mockRoundRepo struct {
	mock.Mock
}

func (that *mockRoundRepo) CreateOrUpdate(ctx context.Context, round *entity.Round) error {
	args := that.Called(ctx, round)
	return args.Error(0)
}

func (that *mockRoundRepo) GetByID(ctx context.Context, id string) (*entity.Round, error) {
	args := that.Called(ctx, id)
	round, _ := args.Get(0).(*entity.Round)
	return round, args.Error(1)
}

func (that *mockRoundRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

// memoryRoundRepo keeps copies of rounds in a map.
type memoryRoundRepo struct {
	mu     sync.Mutex
	rounds map[string]entity.Round
}

func newMemoryRoundRepo() *memoryRoundRepo {
	return &memoryRoundRepo{rounds: make(map[string]entity.Round)}
}

func (that *memoryRoundRepo) CreateOrUpdate(_ context.Context, round *entity.Round) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	stored := *round
	stored.Tiles = slices.Clone(round.Tiles)
	stored.Pile = slices.Clone(round.Pile)
	stored.Placed = slices.Clone(round.Placed)
	that.rounds[round.ID] = stored

	return nil
}

func (that *memoryRoundRepo) GetByID(_ context.Context, id string) (*entity.Round, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	round, ok := that.rounds[id]
	if !ok {
		return nil, apperror.ErrRoundNotFound
	}

	return &round, nil
}

func (that *memoryRoundRepo) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.rounds[id]; !ok {
		return apperror.ErrRoundNotFound
	}
	delete(that.rounds, id)

	return nil
}

func seededRand() Rand {
	return rand.New(rand.NewPCG(3, 5))
}

func newTestManager(repo roundRepo, words ...string) *RoundManager {
	if len(words) == 0 {
		words = []string{"apple", "zebra", "mango", "melon"}
	}

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	return NewRoundManager(logger, repo, wordbank.Load(words, nil), seededRand)
}

func TestRoundManager_StartRound(t *testing.T) {
	ctx := context.Background()

	t.Run("Deals and stores a new round", func(t *testing.T) {
		// Given: a manager over an empty store
		repo := newMemoryRoundRepo()
		manager := newTestManager(repo)

		// When: starting a round
		round, err := manager.StartRound(ctx)

		// Then: the round is in progress with all ten tiles on the pile
		require.NoError(t, err)
		assert.NotEmpty(t, round.ID)
		assert.Equal(t, entity.StateInProgress, round.State)
		assert.NotEqual(t, round.Word1, round.Word2)
		assert.Len(t, round.Tiles, 10)
		assert.Len(t, round.Pile, 10)
		assert.Empty(t, round.Placed)

		// Then: the stored copy matches
		stored, err := repo.GetByID(ctx, round.ID)
		require.NoError(t, err)
		assert.Equal(t, round, stored)
	})

	t.Run("Fails with a single word dictionary", func(t *testing.T) {
		// Given: a bank that cannot produce a pair
		mockRepo := new(mockRoundRepo)
		manager := newTestManager(mockRepo, "apple", "apple")

		// When: starting a round
		round, err := manager.StartRound(ctx)

		// Then: ErrInsufficientDictionary and nothing stored
		require.ErrorIs(t, err, apperror.ErrInsufficientDictionary)
		assert.Nil(t, round)
		mockRepo.AssertNotCalled(t, "CreateOrUpdate", mock.Anything, mock.Anything)
	})

	t.Run("Returns error if the round cannot be saved", func(t *testing.T) {
		// Given: a store that is down
		mockRepo := new(mockRoundRepo)
		mockRepo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Round")).
			Return(errRedisDown).
			Once()
		manager := newTestManager(mockRepo)

		// When: starting a round
		round, err := manager.StartRound(ctx)

		// Then: the store error surfaces
		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, round)
		mockRepo.AssertExpectations(t)
	})
}

func TestRoundManager_PlaceTile(t *testing.T) {
	ctx := context.Background()

	t.Run("Moves the top tile and saves", func(t *testing.T) {
		// Given: a started round
		repo := newMemoryRoundRepo()
		manager := newTestManager(repo)
		round, err := manager.StartRound(ctx)
		require.NoError(t, err)
		top := round.Pile[len(round.Pile)-1]

		// When: placing into slot 1
		move, err := manager.PlaceTile(ctx, round.ID, entity.LocationSlot1)

		// Then: the top tile moved and the stored round reflects it
		require.NoError(t, err)
		assert.Equal(t, top, move.Tile.ID)
		assert.Equal(t, 0, move.Tile.ID)
		assert.False(t, move.PileEmptyAfter)
		assert.Equal(t, []int{0}, move.Round.Placed)

		stored, err := repo.GetByID(ctx, round.ID)
		require.NoError(t, err)
		assert.Equal(t, move.Round, stored)
	})

	t.Run("Completes the round on the last tile", func(t *testing.T) {
		// Given: a started round
		repo := newMemoryRoundRepo()
		manager := newTestManager(repo)
		round, err := manager.StartRound(ctx)
		require.NoError(t, err)

		// When: placing every tile
		var move *Move
		for range 10 {
			move, err = manager.PlaceTile(ctx, round.ID, entity.LocationSlot2)
			require.NoError(t, err)
		}

		// Then: the last move completes the round
		assert.True(t, move.PileEmptyAfter)
		assert.Equal(t, entity.StateComplete, move.Round.State)

		// When: placing once more
		_, err = manager.PlaceTile(ctx, round.ID, entity.LocationSlot2)

		// Then: ErrNotInProgress
		require.ErrorIs(t, err, apperror.ErrNotInProgress)
	})

	t.Run("Rejects an invalid slot", func(t *testing.T) {
		repo := newMemoryRoundRepo()
		manager := newTestManager(repo)
		round, err := manager.StartRound(ctx)
		require.NoError(t, err)

		_, err = manager.PlaceTile(ctx, round.ID, entity.Location("slot3"))

		require.ErrorIs(t, err, apperror.ErrInvalidSlot)
	})

	t.Run("Returns ErrRoundNotFound for an unknown round", func(t *testing.T) {
		manager := newTestManager(newMemoryRoundRepo())

		_, err := manager.PlaceTile(ctx, "missing", entity.LocationSlot1)

		require.ErrorIs(t, err, apperror.ErrRoundNotFound)
	})

	t.Run("Returns ErrCorruptRound for a damaged round", func(t *testing.T) {
		// Given: a stored round whose pile lost a tile
		mockRepo := new(mockRoundRepo)
		mockRepo.On("GetByID", mock.Anything, "r1").
			Return(&entity.Round{
				ID:    "r1",
				State: entity.StateInProgress,
				Tiles: []entity.Tile{{ID: 0, Char: "a", Location: entity.LocationPile}},
			}, nil).
			Once()
		manager := newTestManager(mockRepo)

		// When: placing
		_, err := manager.PlaceTile(ctx, "r1", entity.LocationSlot1)

		// Then: ErrCorruptRound
		require.ErrorIs(t, err, apperror.ErrCorruptRound)
		mockRepo.AssertExpectations(t)
	})
}

func TestRoundManager_Undo(t *testing.T) {
	ctx := context.Background()

	t.Run("Undo with nothing placed returns the round unchanged", func(t *testing.T) {
		// Given: a fresh round
		repo := newMemoryRoundRepo()
		manager := newTestManager(repo)
		round, err := manager.StartRound(ctx)
		require.NoError(t, err)

		// When: undoing
		move, err := manager.Undo(ctx, round.ID)

		// Then: no tile moved and no error
		require.NoError(t, err)
		assert.Nil(t, move.Tile)
		assert.Equal(t, round, move.Round)
	})

	t.Run("Undo takes back the latest placement", func(t *testing.T) {
		// Given: two placements
		repo := newMemoryRoundRepo()
		manager := newTestManager(repo)
		round, err := manager.StartRound(ctx)
		require.NoError(t, err)

		_, err = manager.PlaceTile(ctx, round.ID, entity.LocationSlot1)
		require.NoError(t, err)
		second, err := manager.PlaceTile(ctx, round.ID, entity.LocationSlot2)
		require.NoError(t, err)

		// When: undoing
		move, err := manager.Undo(ctx, round.ID)

		// Then: the second tile is back on top of the pile
		require.NoError(t, err)
		assert.Equal(t, second.Tile.ID, move.Tile.ID)
		assert.Equal(t, entity.LocationPile, move.Tile.Location)
		assert.Equal(t, move.Tile.ID, move.Round.Pile[len(move.Round.Pile)-1])
		assert.Equal(t, []int{0}, move.Round.Placed)
	})

	t.Run("Undo resurrects a completed round", func(t *testing.T) {
		repo := newMemoryRoundRepo()
		manager := newTestManager(repo)
		round, err := manager.StartRound(ctx)
		require.NoError(t, err)
		for range 10 {
			_, err = manager.PlaceTile(ctx, round.ID, entity.LocationSlot1)
			require.NoError(t, err)
		}

		move, err := manager.Undo(ctx, round.ID)

		require.NoError(t, err)
		assert.Equal(t, entity.StateInProgress, move.Round.State)
		assert.Equal(t, []int{9}, move.Round.Pile)
	})

	t.Run("Returns error if the round cannot be loaded", func(t *testing.T) {
		mockRepo := new(mockRoundRepo)
		mockRepo.On("GetByID", mock.Anything, "r1").Return(nil, errRedisDown).Once()
		manager := newTestManager(mockRepo)

		move, err := manager.Undo(ctx, "r1")

		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, move)
		mockRepo.AssertExpectations(t)
	})
}

func TestRoundManager_Restart(t *testing.T) {
	ctx := context.Background()

	// Given: a round with placements
	repo := newMemoryRoundRepo()
	manager := newTestManager(repo)
	round, err := manager.StartRound(ctx)
	require.NoError(t, err)
	for range 4 {
		_, err = manager.PlaceTile(ctx, round.ID, entity.LocationSlot1)
		require.NoError(t, err)
	}

	// When: restarting it
	restarted, err := manager.Restart(ctx, round.ID)

	// Then: the ID is kept and the new deal is untouched
	require.NoError(t, err)
	assert.Equal(t, round.ID, restarted.ID)
	assert.Equal(t, entity.StateInProgress, restarted.State)
	assert.Len(t, restarted.Pile, 10)
	assert.Empty(t, restarted.Placed)
	assert.Equal(t, restarted.Word1+restarted.Word2, sortedSources(restarted))

	// Then: restarting an unknown round fails
	_, err = manager.Restart(ctx, "missing")
	require.ErrorIs(t, err, apperror.ErrRoundNotFound)
}

func TestRoundManager_DeleteRound(t *testing.T) {
	ctx := context.Background()

	// Given: a started round
	repo := newMemoryRoundRepo()
	manager := newTestManager(repo)
	round, err := manager.StartRound(ctx)
	require.NoError(t, err)

	// When: deleting it
	require.NoError(t, manager.DeleteRound(ctx, round.ID))

	// Then: it cannot be read or deleted again
	_, err = manager.GetRound(ctx, round.ID)
	require.ErrorIs(t, err, apperror.ErrRoundNotFound)
	require.ErrorIs(t, manager.DeleteRound(ctx, round.ID), apperror.ErrRoundNotFound)
}

func TestRoundManager_Concurrent(t *testing.T) {
	ctx := context.Background()

	// Given: a started round
	repo := newMemoryRoundRepo()
	manager := newTestManager(repo)
	round, err := manager.StartRound(ctx)
	require.NoError(t, err)

	// When: placing from many goroutines at once
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = manager.PlaceTile(ctx, round.ID, entity.LocationSlot1)
		}()
	}
	wg.Wait()

	// Then: every placement landed exactly once
	stored, err := manager.GetRound(ctx, round.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StateComplete, stored.State)
	assert.Empty(t, stored.Pile)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, stored.Placed)
}

func sortedSources(round *entity.Round) string {
	tiles := make([]*entity.Tile, 0, len(round.Tiles))
	for i := range round.Tiles {
		tiles = append(tiles, &round.Tiles[i])
	}

	return scramble.Reconstruct(tiles, entity.SourceWord1) + scramble.Reconstruct(tiles, entity.SourceWord2)
}
