package entity

import "fmt"

type State string

const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateComplete   State = "complete"
)

// Round is the stored form of one game session.
// Pile holds tile IDs bottom to top, Placed holds tile IDs oldest to newest.
type Round struct {
	ID     string `json:"id"`
	Word1  string `json:"word1"`
	Word2  string `json:"word2"`
	State  State  `json:"state"`
	Tiles  []Tile `json:"tiles"`
	Pile   []int  `json:"pile"`
	Placed []int  `json:"placed"`
}

func (that *Round) IsComplete() bool {
	return that.State == StateComplete
}

func (that *Round) IsInProgress() bool {
	return that.State == StateInProgress
}

func (that *Round) IsNotStarted() bool {
	return that.State == StateNotStarted
}

// Solution is the text revealed once the pile is exhausted.
func (that *Round) Solution() string {
	return fmt.Sprintf("%s %s", that.Word1, that.Word2)
}
