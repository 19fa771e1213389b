package reminder

import (
	"context"
	"time"
)

type Shape struct {
	v string
}

func (s Shape) String() string {
	return s.v
}

var (
	ShapeAny      = Shape{}
	ShapeRelative = Shape{v: "relative"}
	ShapeAbsolute = Shape{v: "absolute"}
)

type Query struct {
	Text      string
	Location  *time.Location
	Reference time.Time
	Shape     Shape
}

type Resolution struct {
	At    time.Time
	Body  string
	Shape Shape
	// HasDate is true when an explicit date was given with an absolute time.
	HasDate bool
	// Delay is set for relative expressions.
	Delay time.Duration
}

type TimeResolver interface {
	Resolve(ctx context.Context, query Query) (Resolution, error)
}
