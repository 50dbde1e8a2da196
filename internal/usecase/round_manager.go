package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/rocketscienceinc/wordstack-backend/internal/apperror"
	"github.com/rocketscienceinc/wordstack-backend/internal/entity"
	"github.com/rocketscienceinc/wordstack-backend/internal/pkg"
	"github.com/rocketscienceinc/wordstack-backend/internal/scramble"
	"github.com/rocketscienceinc/wordstack-backend/internal/wordbank"
	"github.com/rocketscienceinc/wordstack-backend/internal/wordstack"
)

type roundRepo interface {
	CreateOrUpdate(ctx context.Context, round *entity.Round) error
	GetByID(ctx context.Context, id string) (*entity.Round, error)
	DeleteByID(ctx context.Context, id string) error
}

// Rand is what both word selection and scrambling draw from.
type Rand interface {
	IntN(n int) int
}

// RandFactory returns the RNG for one operation.
type RandFactory func() Rand

// NewRand is the production RandFactory.
func NewRand() Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Move is the result of a placement or an undo. Tile is nil when an undo
// found nothing to take back.
type Move struct {
	Round          *entity.Round
	Tile           *entity.Tile
	PileEmptyAfter bool
}

// RoundManager runs game sessions stored between requests. Every
// load-mutate-save cycle holds mu.
type RoundManager struct {
	logger    *slog.Logger
	roundRepo roundRepo
	bank      *wordbank.WordBank
	newRand   RandFactory

	mu sync.Mutex
}

func NewRoundManager(logger *slog.Logger, roundRepo roundRepo, bank *wordbank.WordBank, newRand RandFactory) *RoundManager {
	return &RoundManager{
		logger:    logger,
		roundRepo: roundRepo,
		bank:      bank,
		newRand:   newRand,
	}
}

func (that *RoundManager) StartRound(ctx context.Context) (*entity.Round, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session := that.newSession()

	round, err := that.deal(ctx, session, pkg.GenerateRoundID())
	if err != nil {
		return nil, fmt.Errorf("failed to start round: %w", err)
	}

	return round, nil
}

func (that *RoundManager) GetRound(ctx context.Context, id string) (*entity.Round, error) {
	round, err := that.roundRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get round: %w", err)
	}

	return round, nil
}

// PlaceTile moves the top pile tile of round id into slot.
func (that *RoundManager) PlaceTile(ctx context.Context, id string, slot entity.Location) (*Move, error) {
	log := that.logger.With("method", "PlaceTile", "round_id", id)

	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}

	placement, err := session.PlaceTopTile(slot)
	if errors.Is(err, apperror.ErrNotInProgress) || errors.Is(err, apperror.ErrEmptyPile) {
		log.Error("placement out of sequence", "state", session.State(), "error", err)
		return nil, err
	}

	if err != nil {
		return nil, fmt.Errorf("failed to place tile: %w", err)
	}

	round := session.Snapshot(id)
	if err = that.updateRound(ctx, round); err != nil {
		return nil, err
	}

	if placement.PileEmptyAfter {
		log.Info("round complete", "solution", round.Solution())
	}

	return &Move{
		Round:          round,
		Tile:           placement.Tile,
		PileEmptyAfter: placement.PileEmptyAfter,
	}, nil
}

// Undo takes back the latest placement of round id. Undo with nothing
// placed is not an error: the round comes back unchanged and Move.Tile is nil.
func (that *RoundManager) Undo(ctx context.Context, id string) (*Move, error) {
	log := that.logger.With("method", "Undo", "round_id", id)

	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}

	tile, err := session.Undo()
	if errors.Is(err, apperror.ErrEmptyHistory) {
		return &Move{Round: session.Snapshot(id)}, nil
	}

	if errors.Is(err, apperror.ErrNotInProgress) {
		log.Error("undo out of sequence", "state", session.State(), "error", err)
		return nil, err
	}

	if err != nil {
		return nil, fmt.Errorf("failed to undo: %w", err)
	}

	round := session.Snapshot(id)
	if err = that.updateRound(ctx, round); err != nil {
		return nil, err
	}

	return &Move{
		Round: round,
		Tile:  tile,
	}, nil
}

// Restart deals a new pair into an existing round, whatever its state.
func (that *RoundManager) Restart(ctx context.Context, id string) (*entity.Round, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}

	round, err := that.deal(ctx, session, id)
	if err != nil {
		return nil, fmt.Errorf("failed to restart round: %w", err)
	}

	return round, nil
}

func (that *RoundManager) DeleteRound(ctx context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.roundRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete round: %w", err)
	}

	that.logger.Info("round deleted", "round_id", id)

	return nil
}

func (that *RoundManager) deal(ctx context.Context, session *wordstack.Session, id string) (*entity.Round, error) {
	deal, err := session.Start()
	if err != nil {
		return nil, err
	}

	that.logger.Debug("round dealt",
		"round_id", id,
		"word1", deal.Word1,
		"word2", deal.Word2,
		"scramble", scramble.Letters(deal.Tiles),
	)

	round := session.Snapshot(id)
	if err = that.updateRound(ctx, round); err != nil {
		return nil, err
	}

	that.logger.Info("round started", "round_id", id)

	return round, nil
}

func (that *RoundManager) newSession() *wordstack.Session {
	rng := that.newRand()

	return wordstack.NewSession(that.bank.Using(rng), rng)
}

func (that *RoundManager) loadSession(ctx context.Context, id string) (*wordstack.Session, error) {
	round, err := that.roundRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get round: %w", err)
	}

	rng := that.newRand()

	session, err := wordstack.Restore(round, that.bank.Using(rng), rng)
	if err != nil {
		return nil, fmt.Errorf("failed to restore round: %w", err)
	}

	return session, nil
}

func (that *RoundManager) updateRound(ctx context.Context, round *entity.Round) error {
	if err := that.roundRepo.CreateOrUpdate(ctx, round); err != nil {
		return fmt.Errorf("failed to save round: %w", err)
	}

	return nil
}
