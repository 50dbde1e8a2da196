package apperror

import "errors"

var (
	ErrInsufficientDictionary = errors.New("dictionary has fewer than two usable words")
	ErrEmptyPile              = errors.New("scrambled pile is empty")
	ErrNotInProgress          = errors.New("round is not in progress")
	ErrEmptyHistory           = errors.New("nothing to undo")
	ErrInvalidSlot            = errors.New("invalid target slot")
	ErrRoundNotFound          = errors.New("round not found")
	ErrCorruptRound           = errors.New("round snapshot is inconsistent")
)
