package wordstack

import (
	"fmt"

	"github.com/rocketscienceinc/wordstack-backend/internal/apperror"
	"github.com/rocketscienceinc/wordstack-backend/internal/entity"
	"github.com/rocketscienceinc/wordstack-backend/internal/scramble"
)

// Snapshot captures the session as a storable round.
func (that *Session) Snapshot(id string) *entity.Round {
	round := &entity.Round{
		ID:     id,
		Word1:  that.word1,
		Word2:  that.word2,
		State:  that.state,
		Tiles:  make([]entity.Tile, 0, len(that.tiles)),
		Pile:   make([]int, 0, that.pile.Len()),
		Placed: make([]int, 0, that.placed.Len()),
	}

	for _, tile := range that.tiles {
		round.Tiles = append(round.Tiles, *tile)
	}

	for _, tile := range that.pile.Items() {
		round.Pile = append(round.Pile, tile.ID)
	}

	for _, tile := range that.placed.Items() {
		round.Placed = append(round.Placed, tile.ID)
	}

	return round
}

// Restore rebuilds a session from a stored round. Pile and history refer to
// the same tile values, so identity survives the trip through storage.
func Restore(round *entity.Round, bank pairSelector, rng scramble.Rand) (*Session, error) {
	session := NewSession(bank, rng)

	tiles := make([]*entity.Tile, len(round.Tiles))
	for i := range round.Tiles {
		tile := round.Tiles[i]
		if tile.ID != i {
			return nil, fmt.Errorf("%w: tile %d has id %d", apperror.ErrCorruptRound, i, tile.ID)
		}
		tiles[i] = &tile
	}

	seen := make([]bool, len(tiles))
	take := func(id int) (*entity.Tile, error) {
		if id < 0 || id >= len(tiles) {
			return nil, fmt.Errorf("%w: unknown tile %d", apperror.ErrCorruptRound, id)
		}

		if seen[id] {
			return nil, fmt.Errorf("%w: tile %d listed twice", apperror.ErrCorruptRound, id)
		}
		seen[id] = true

		return tiles[id], nil
	}

	for _, id := range round.Pile {
		tile, err := take(id)
		if err != nil {
			return nil, err
		}

		if !tile.IsOnPile() {
			return nil, fmt.Errorf("%w: pile tile %d is in %s", apperror.ErrCorruptRound, id, tile.Location)
		}
		session.pile.Push(tile)
	}

	for _, id := range round.Placed {
		tile, err := take(id)
		if err != nil {
			return nil, err
		}

		if !tile.Location.IsSlot() {
			return nil, fmt.Errorf("%w: placed tile %d is in %s", apperror.ErrCorruptRound, id, tile.Location)
		}
		session.placed.Push(tile)
	}

	if session.pile.Len()+session.placed.Len() != len(tiles) {
		return nil, fmt.Errorf("%w: %d of %d tiles accounted for",
			apperror.ErrCorruptRound, session.pile.Len()+session.placed.Len(), len(tiles))
	}

	if expected := stateOf(len(tiles), session.pile.Len()); round.State != expected {
		return nil, fmt.Errorf("%w: state %s, expected %s", apperror.ErrCorruptRound, round.State, expected)
	}

	session.word1 = round.Word1
	session.word2 = round.Word2
	session.tiles = tiles
	session.state = round.State

	return session, nil
}

func stateOf(tiles, onPile int) entity.State {
	switch {
	case tiles == 0:
		return entity.StateNotStarted
	case onPile == 0:
		return entity.StateComplete
	default:
		return entity.StateInProgress
	}
}
