package scramble

import (
	"strings"

	"github.com/rocketscienceinc/wordstack-backend/internal/entity"
)

// Rand is the subset of *rand.Rand used for the interleaving draws.
type Rand interface {
	IntN(n int) int
}

// cursor walks one source word letter by letter.
type cursor struct {
	letters []rune
	source  entity.Source
	next    int
}

func (that *cursor) exhausted() bool {
	return that.next >= len(that.letters)
}

// Scramble merges the letters of both words into one sequence. Each step
// flips a fair coin for the side to take from; a side that is already used
// up is skipped by flipping again. The letters of each word keep their
// relative order.
//
// Tiles are numbered by their position in the result and start on the pile.
func Scramble(rng Rand, word1, word2 string) []*entity.Tile {
	sides := [2]*cursor{
		{letters: []rune(word1), source: entity.SourceWord1},
		{letters: []rune(word2), source: entity.SourceWord2},
	}

	total := len(sides[0].letters) + len(sides[1].letters)
	tiles := make([]*entity.Tile, 0, total)

	for !sides[0].exhausted() || !sides[1].exhausted() {
		side := sides[rng.IntN(2)]
		if side.exhausted() {
			continue
		}

		tiles = append(tiles, &entity.Tile{
			ID:          len(tiles),
			Char:        string(side.letters[side.next]),
			Source:      side.source,
			SourceIndex: side.next,
			Location:    entity.LocationPile,
		})
		side.next++
	}

	return tiles
}

// Letters renders the scrambled sequence as a string.
func Letters(tiles []*entity.Tile) string {
	var sb strings.Builder
	for _, tile := range tiles {
		sb.WriteString(tile.Char)
	}

	return sb.String()
}

// Reconstruct rebuilds the word that a source contributed, ordering its
// tiles by source index.
func Reconstruct(tiles []*entity.Tile, source entity.Source) string {
	letters := make([]string, 0, len(tiles))
	for _, tile := range tiles {
		if tile.Source != source {
			continue
		}

		for len(letters) <= tile.SourceIndex {
			letters = append(letters, "")
		}
		letters[tile.SourceIndex] = tile.Char
	}

	return strings.Join(letters, "")
}
