package sink

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"zebranoise/internal/failure"
	"zebranoise/internal/frame"
	"zebranoise/internal/stimulus"
)

// PNGSequence writes each frame as frame_NNNNNN.png in a directory.
type PNGSequence struct {
	dir     string
	format  stimulus.Format
	encoder png.Encoder
	next    int
	closed  bool
}

// PNGOpener returns an opener that writes the sequence into dir.
func PNGOpener(dir string) stimulus.Opener {
	return stimulus.OpenerFunc(func(_ context.Context, format stimulus.Format) (stimulus.Sink, error) {
		return NewPNGSequence(dir, format)
	})
}

// NewPNGSequence creates dir if needed.
func NewPNGSequence(dir string, format stimulus.Format) (*PNGSequence, error) {
	if dir == "" {
		return nil, failure.Wrap(failure.ErrSink, "sink", "open png sequence", "directory required", nil)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, failure.Wrap(failure.ErrSink, "sink", "open png sequence", dir, err)
	}
	return &PNGSequence{
		dir:     dir,
		format:  format,
		encoder: png.Encoder{CompressionLevel: png.BestSpeed},
	}, nil
}

// FrameName is the file name for frame n.
func FrameName(n int) string { return fmt.Sprintf("frame_%06d.png", n) }

// Write encodes the next frame.
func (s *PNGSequence) Write(f *frame.RGB) error {
	if s.closed {
		return failure.Wrap(failure.ErrSink, "sink", "write frame", "sequence closed", nil)
	}
	if f == nil || f.Width != s.format.Width || f.Height != s.format.Height {
		return failure.Wrap(failure.ErrSink, "sink", "write frame", "frame does not match sink format", nil)
	}
	path := filepath.Join(s.dir, FrameName(s.next))
	out, err := os.Create(path)
	if err != nil {
		return failure.Wrap(failure.ErrSink, "sink", "write frame", path, err)
	}
	if err := s.encoder.Encode(out, f.Image()); err != nil {
		_ = out.Close()
		return failure.Wrap(failure.ErrSink, "sink", "encode png", path, err)
	}
	if err := out.Close(); err != nil {
		return failure.Wrap(failure.ErrSink, "sink", "write frame", path, err)
	}
	s.next++
	return nil
}

// Frames is the number of files written.
func (s *PNGSequence) Frames() int { return s.next }

// Close marks the sequence finished.
func (s *PNGSequence) Close() error {
	s.closed = true
	return nil
}

var _ stimulus.Sink = (*PNGSequence)(nil)
