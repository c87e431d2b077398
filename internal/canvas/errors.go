package canvas

import "errors"

var (
	// ErrOutOfBounds is returned when a coordinate lies outside the buffer.
	ErrOutOfBounds = errors.New("coordinates outside canvas bounds")

	// ErrDimensionMismatch is returned when a snapshot does not match the
	// buffer it is restored into.
	ErrDimensionMismatch = errors.New("snapshot dimensions do not match canvas")

	// ErrInvalidDimensions is returned when a buffer is created with a
	// non-positive width or height.
	ErrInvalidDimensions = errors.New("canvas dimensions must be positive")

	// ErrInvalidColor is returned when a color string cannot be parsed.
	ErrInvalidColor = errors.New("invalid color")

	// ErrInvalidRegion is returned when a view region is empty or inverted.
	ErrInvalidRegion = errors.New("invalid region")

	// ErrInvalidGrid is returned when grid lines would be closer together
	// than one pixel of the rendered view.
	ErrInvalidGrid = errors.New("invalid grid")
)
