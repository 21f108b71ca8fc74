package stimulus

import (
	"context"

	"zebranoise/internal/frame"
)

// Format describes the frames a sink will receive.
type Format struct {
	Width  int
	Height int
	FPS    int
}

// Sink consumes RGB frames in order. Close is called exactly once.
type Sink interface {
	Write(*frame.RGB) error
	Close() error
}

// Opener acquires a Sink for the given format.
type Opener interface {
	Open(ctx context.Context, format Format) (Sink, error)
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, format Format) (Sink, error)

// Open calls f.
func (f OpenerFunc) Open(ctx context.Context, format Format) (Sink, error) {
	return f(ctx, format)
}

// Progress reports how far a stage has advanced.
type Progress struct {
	Stage string
	Done  int
	Total int
}

// Observer receives progress after every written frame.
type Observer func(Progress)
