package wordbank

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rocketscienceinc/wordstack-backend/internal/apperror"
	"github.com/rocketscienceinc/wordstack-backend/internal/entity"
)

// maxPairAttempts bounds the redraw loop in SelectPair.
const maxPairAttempts = 64

// Rand is the subset of *rand.Rand used for selection.
type Rand interface {
	IntN(n int) int
}

// WordBank holds the candidate words for puzzles. It is built once and never
// mutated afterwards.
type WordBank struct {
	words []string
	rng   Rand
}

// Load keeps the entries that are exactly entity.WordLength letters long
// after trimming. Everything else is dropped without error, and repeated
// entries are kept once.
func Load(words []string, rng Rand) *WordBank {
	seen := make(map[string]struct{}, len(words))
	kept := make([]string, 0, len(words))

	for _, raw := range words {
		word := strings.TrimSpace(raw)
		if !IsCandidate(word) {
			continue
		}

		if _, ok := seen[word]; ok {
			continue
		}

		seen[word] = struct{}{}
		kept = append(kept, word)
	}

	return &WordBank{
		words: kept,
		rng:   rng,
	}
}

// IsCandidate reports whether word has the puzzle length and only letters.
func IsCandidate(word string) bool {
	if utf8.RuneCountInString(word) != entity.WordLength {
		return false
	}

	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}

	return true
}

// SelectPair draws two different words at random.
func (that *WordBank) SelectPair() (string, string, error) {
	size := len(that.words)
	if size < 2 {
		return "", "", fmt.Errorf("%w: %d words loaded", apperror.ErrInsufficientDictionary, size)
	}

	for range maxPairAttempts {
		first := that.rng.IntN(size)
		second := that.rng.IntN(size)
		if first != second {
			return that.words[first], that.words[second], nil
		}
	}

	return "", "", fmt.Errorf("%w: no distinct pair after %d draws", apperror.ErrInsufficientDictionary, maxPairAttempts)
}

// Using returns a bank over the same words that draws from rng.
func (that *WordBank) Using(rng Rand) *WordBank {
	return &WordBank{
		words: that.words,
		rng:   rng,
	}
}

func (that *WordBank) Len() int {
	return len(that.words)
}

// Words returns a copy of the loaded words in load order.
func (that *WordBank) Words() []string {
	out := make([]string, len(that.words))
	copy(out, that.words)

	return out
}
