package entity

// WordLength is the number of letters in every puzzle word.
const WordLength = 5

type Location string

const (
	LocationPile  Location = "pile"
	LocationSlot1 Location = "slot1"
	LocationSlot2 Location = "slot2"
)

// IsSlot reports whether the location is one of the two target slots.
func (that Location) IsSlot() bool {
	return that == LocationSlot1 || that == LocationSlot2
}

type Source string

const (
	SourceWord1 Source = "word1"
	SourceWord2 Source = "word2"
)

// Tile is one scrambled letter. ID is its position in the scramble and stays
// fixed for the whole round, so two tiles with the same letter are still
// distinguishable.
type Tile struct {
	ID          int      `json:"id"`
	Char        string   `json:"char"`
	Source      Source   `json:"source"`
	SourceIndex int      `json:"source_index"`
	Location    Location `json:"location"`
}

func (that *Tile) IsOnPile() bool {
	return that.Location == LocationPile
}
