// Package scan holds the position-state value and the boundary-access
// error set shared by the character scanner and the token cursor.
package scan

import "errors"

// Boundary-access failures for indexed access into a source buffer or a
// token stream. Each stage translates these into its own coded diagnostic.
var (
	ErrEmpty         = errors.New("scan: buffer is empty")
	ErrBeforeStart   = errors.New("scan: index before cursor start")
	ErrPastEnd       = errors.New("scan: index past end of buffer")
	ErrInvalidAccess = errors.New("scan: invalid index access")
)

// Position is the cursor state threaded through a scanning pass. Start marks
// the first index of the unit being built, Current the next unconsumed
// index. Line is 1-based.
type Position struct {
	Start   int
	Current int
	Line    int
}

// NewPosition returns a position at the beginning of a buffer, line 1.
func NewPosition() Position {
	return Position{Line: 1}
}

// Classify maps an out-of-range index to the matching boundary error,
// judged against the cursor position and buffer length.
func Classify(index int, current int, length int) error {
	switch {
	case length == 0:
		return ErrEmpty
	case index < current:
		return ErrBeforeStart
	case index >= length:
		return ErrPastEnd
	default:
		return ErrInvalidAccess
	}
}
