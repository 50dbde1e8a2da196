package rest

import (
	"github.com/rocketscienceinc/wordstack-backend/internal/entity"
)

const messageStarted = "Game started"

type tileView struct {
	ID   int    `json:"id"`
	Char string `json:"char"`
}

// roundView is what a client renders. The words stay hidden until the pile
// is exhausted.
type roundView struct {
	ID      string       `json:"id"`
	State   entity.State `json:"state"`
	Pile    []tileView   `json:"pile"`
	Slot1   []tileView   `json:"slot1"`
	Slot2   []tileView   `json:"slot2"`
	Message string       `json:"message"`
}

type placeResponse struct {
	Tile      tileView  `json:"tile"`
	PileEmpty bool      `json:"pile_empty"`
	Round     roundView `json:"round"`
}

type undoResponse struct {
	Undone bool      `json:"undone"`
	Tile   *tileView `json:"tile,omitempty"`
	Round  roundView `json:"round"`
}

type placeRequest struct {
	Slot entity.Location `json:"slot"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newTileView(tile *entity.Tile) tileView {
	return tileView{
		ID:   tile.ID,
		Char: tile.Char,
	}
}

func newRoundView(round *entity.Round) roundView {
	view := roundView{
		ID:      round.ID,
		State:   round.State,
		Pile:    make([]tileView, 0, len(round.Pile)),
		Slot1:   []tileView{},
		Slot2:   []tileView{},
		Message: messageStarted,
	}

	// stored bottom to top, shown top first
	for i := len(round.Pile) - 1; i >= 0; i-- {
		view.Pile = append(view.Pile, newTileView(&round.Tiles[round.Pile[i]]))
	}

	for _, id := range round.Placed {
		tile := &round.Tiles[id]
		switch tile.Location {
		case entity.LocationSlot1:
			view.Slot1 = append(view.Slot1, newTileView(tile))
		case entity.LocationSlot2:
			view.Slot2 = append(view.Slot2, newTileView(tile))
		}
	}

	if round.IsComplete() {
		view.Message = round.Solution()
	}

	return view
}
