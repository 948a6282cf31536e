package arena

import "errors"

// Rejections returned by Reduce. The returned Run is always the input Run.
var (
	// Invalid submissions. Callers ignore these silently.
	ErrEmptyGuess = errors.New("empty guess")
	ErrLocked     = errors.New("question already resolved")
	ErrLoading    = errors.New("question still loading")
	ErrWrongMode  = errors.New("event not valid in current mode")

	// Configuration gaps.
	ErrUnknownAugment = errors.New("unknown augment")
	ErrUnknownTier    = errors.New("unknown doom tier")
	ErrTierLocked     = errors.New("doom tier locked")

	ErrInvalidTick   = errors.New("tick must advance time")
	ErrStaleQuestion = errors.New("stale question fetch")
	ErrGameOver      = errors.New("run is over")
	ErrUnknownEvent  = errors.New("unknown event")
)

// IsInvalidSubmission reports whether err is an input the UI should ignore.
func IsInvalidSubmission(err error) bool {
	return errors.Is(err, ErrEmptyGuess) || errors.Is(err, ErrLocked) ||
		errors.Is(err, ErrLoading) || errors.Is(err, ErrWrongMode)
}
