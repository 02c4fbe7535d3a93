package voronoi

import (
	"github.com/0x0FACED/go-fortune/pkg/logger"
	"github.com/pkg/errors"
)

type options struct {
	colors     []uint32
	weights    []float64
	log        *logger.ZapLogger
	triangles  bool
	eventLimit int
}

// Option configures CreateDiagram.
type Option func(*options) error

// WithColors assigns a color to every input point, in input order.
func WithColors(colors []uint32) Option {
	return func(o *options) error {
		o.colors = colors
		return nil
	}
}

// WithWeights assigns a weight to every input point, in input order.
func WithWeights(weights []float64) Option {
	return func(o *options) error {
		o.weights = weights
		return nil
	}
}

func WithLogger(l *logger.ZapLogger) Option {
	return func(o *options) error {
		if l == nil {
			return errors.Wrap(ErrInvalidOption, "nil logger")
		}
		o.log = l
		return nil
	}
}

// WithTriangles records the Delaunay triangle of every circle event.
func WithTriangles() Option {
	return func(o *options) error {
		o.triangles = true
		return nil
	}
}

// WithEventLimit caps the number of sweep events. By default it is derived from the
// site count with enough headroom for any valid input.
func WithEventLimit(limit int) Option {
	return func(o *options) error {
		if limit <= 0 {
			return errors.Wrapf(ErrInvalidOption, "event limit %d must be positive", limit)
		}
		o.eventLimit = limit
		return nil
	}
}

func defaultEventLimit(n int) int {
	// n событий точки и не больше 2n событий круга
	return 4*n + 16
}
