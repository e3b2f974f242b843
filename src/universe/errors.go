package universe

import "github.com/pkg/errors"

//validation failures, always wrapped with call-site context
var (
	ErrInvalidDimension   = errors.New("invalid grid dimension")
	ErrInvalidProbability = errors.New("probability outside [0,1]")
	ErrOutOfBounds        = errors.New("coordinates outside the grid")
)
