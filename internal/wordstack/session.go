package wordstack

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/wordstack-backend/internal/apperror"
	"github.com/rocketscienceinc/wordstack-backend/internal/entity"
	"github.com/rocketscienceinc/wordstack-backend/internal/scramble"
)

type pairSelector interface {
	SelectPair() (string, string, error)
}

// Deal is what a fresh round shows: both words and the scramble, in order.
type Deal struct {
	Word1 string
	Word2 string
	Tiles []*entity.Tile
}

// Placement is the outcome of moving the top pile tile into a slot.
type Placement struct {
	Tile           *entity.Tile
	PileEmptyAfter bool
}

// Session is one round of the puzzle. It is not safe for concurrent use;
// callers serialise every operation.
type Session struct {
	bank pairSelector
	rng  scramble.Rand

	word1 string
	word2 string
	tiles []*entity.Tile

	pile   *Stack[*entity.Tile]
	placed *Stack[*entity.Tile]
	state  entity.State
}

func NewSession(bank pairSelector, rng scramble.Rand) *Session {
	return &Session{
		bank:   bank,
		rng:    rng,
		pile:   NewStack[*entity.Tile](),
		placed: NewStack[*entity.Tile](),
		state:  entity.StateNotStarted,
	}
}

// Start deals a new round from any state. When no pair can be selected the
// current round is left as it was.
func (that *Session) Start() (*Deal, error) {
	word1, word2, err := that.bank.SelectPair()
	if err != nil {
		return nil, fmt.Errorf("failed to select words: %w", err)
	}

	tiles := scramble.Scramble(that.rng, word1, word2)

	pile := NewStack[*entity.Tile]()
	for i := len(tiles) - 1; i >= 0; i-- {
		pile.Push(tiles[i])
	}

	that.word1 = word1
	that.word2 = word2
	that.tiles = tiles
	that.pile = pile
	that.placed = NewStack[*entity.Tile]()
	that.state = entity.StateInProgress

	return &Deal{
		Word1: word1,
		Word2: word2,
		Tiles: that.Tiles(),
	}, nil
}

// PlaceTopTile moves the top pile tile into slot. Any tile may go to either
// slot; whether it belongs there is not checked.
func (that *Session) PlaceTopTile(slot entity.Location) (*Placement, error) {
	if that.state != entity.StateInProgress {
		return nil, fmt.Errorf("%w: state %s", apperror.ErrNotInProgress, that.state)
	}

	if !slot.IsSlot() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidSlot, slot)
	}

	tile, err := that.pile.Pop()
	if err != nil {
		return nil, apperror.ErrEmptyPile
	}

	tile.Location = slot
	that.placed.Push(tile)

	if that.pile.Empty() {
		that.state = entity.StateComplete
	}

	return &Placement{
		Tile:           tile,
		PileEmptyAfter: that.pile.Empty(),
	}, nil
}

// Undo returns the most recently placed tile to the top of the pile. A
// completed round goes back to in progress.
func (that *Session) Undo() (*entity.Tile, error) {
	if that.state == entity.StateNotStarted {
		return nil, fmt.Errorf("%w: state %s", apperror.ErrNotInProgress, that.state)
	}

	tile, err := that.placed.Pop()
	if err != nil {
		return nil, apperror.ErrEmptyHistory
	}

	tile.Location = entity.LocationPile
	that.pile.Push(tile)

	if that.state == entity.StateComplete {
		that.state = entity.StateInProgress
	}

	return tile, nil
}

func (that *Session) State() entity.State {
	return that.state
}

func (that *Session) Words() (string, string) {
	return that.word1, that.word2
}

// Tiles returns every tile of the round in scramble order.
func (that *Session) Tiles() []*entity.Tile {
	out := make([]*entity.Tile, len(that.tiles))
	copy(out, that.tiles)

	return out
}

// Pile returns the unplaced tiles, top first.
func (that *Session) Pile() []*entity.Tile {
	items := that.pile.Items()
	slices.Reverse(items)

	return items
}

// Placed returns the placement history, oldest first.
func (that *Session) Placed() []*entity.Tile {
	return that.placed.Items()
}

// SlotTiles returns the tiles in slot in the order they were dropped there.
func (that *Session) SlotTiles(slot entity.Location) []*entity.Tile {
	var out []*entity.Tile
	for _, tile := range that.placed.Items() {
		if tile.Location == slot {
			out = append(out, tile)
		}
	}

	return out
}
