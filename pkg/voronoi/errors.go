package voronoi

import "github.com/pkg/errors"

var (
	ErrNoSites           = errors.New("voronoi: at least one site is required")
	ErrInvalidCoordinate = errors.New("voronoi: coordinate is NaN or infinite")
	ErrDuplicateSite     = errors.New("voronoi: duplicate site")
	ErrInvalidBounds     = errors.New("voronoi: bounds must be finite with positive width and height")
	ErrOptionLength      = errors.New("voronoi: option length does not match number of sites")
	ErrInvalidOption     = errors.New("voronoi: invalid option")
	// ErrEventLimit means the sweep processed more events than any valid input needs.
	ErrEventLimit = errors.New("voronoi: sweep exceeded its event budget")
)
