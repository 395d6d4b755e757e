package leave

import "errors"

var (
	ErrInvalidCategory  = errors.New("invalid leave category")
	ErrInvalidYear      = errors.New("invalid leave year")
	ErrInvalidCarryOver = errors.New("carry-over days must be non-negative")
)
