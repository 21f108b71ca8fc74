package sink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"zebranoise/internal/failure"
	"zebranoise/internal/frame"
	"zebranoise/internal/stimulus"
)

var commandContext = exec.CommandContext

// Option configures the ffmpeg sink.
type Option func(*FFmpeg)

// WithBinary overrides the ffmpeg executable.
func WithBinary(binary string) Option {
	return func(f *FFmpeg) {
		if strings.TrimSpace(binary) != "" {
			f.binary = binary
		}
	}
}

// WithCodec selects the video codec passed to -c:v.
func WithCodec(codec string) Option {
	return func(f *FFmpeg) {
		if strings.TrimSpace(codec) != "" {
			f.codec = codec
		}
	}
}

// WithQuality sets the -q:v value used by the mjpeg encoder.
func WithQuality(q int) Option {
	return func(f *FFmpeg) {
		if q > 0 {
			f.quality = q
		}
	}
}

// FFmpeg streams raw frames into an ffmpeg encoder process.
type FFmpeg struct {
	binary  string
	codec   string
	quality int
	path    string
	format  stimulus.Format

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr *tail
	frames int

	closeOnce sync.Once
	closeErr  error
}

// VideoOpener returns an opener that starts ffmpeg writing to path.
func VideoOpener(path string, opts ...Option) stimulus.Opener {
	return stimulus.OpenerFunc(func(ctx context.Context, format stimulus.Format) (stimulus.Sink, error) {
		return OpenFFmpeg(ctx, path, format, opts...)
	})
}

// OpenFFmpeg starts the encoder. The process is killed if ctx is canceled
// before Close.
func OpenFFmpeg(ctx context.Context, path string, format stimulus.Format, opts ...Option) (*FFmpeg, error) {
	if strings.TrimSpace(path) == "" {
		return nil, failure.Wrap(failure.ErrSink, "sink", "open ffmpeg", "output path required", nil)
	}
	if format.Width <= 0 || format.Height <= 0 || format.FPS <= 0 {
		return nil, failure.Wrap(failure.ErrSink, "sink", "open ffmpeg", fmt.Sprintf("invalid format %dx%d@%d", format.Width, format.Height, format.FPS), nil)
	}
	f := &FFmpeg{binary: "ffmpeg", codec: "mjpeg", quality: 2, path: path, format: format, stderr: &tail{limit: 4096}}
	for _, opt := range opts {
		opt(f)
	}

	cmd := commandContext(ctx, f.binary, f.Args()...) //nolint:gosec
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, failure.Wrap(failure.ErrSink, "sink", "open ffmpeg", "stdin pipe", err)
	}
	cmd.Stderr = f.stderr
	if err := cmd.Start(); err != nil {
		return nil, failure.Wrap(failure.ErrSink, "sink", "start ffmpeg", f.binary, err)
	}
	f.cmd = cmd
	f.stdin = stdin
	return f, nil
}

// Args returns the ffmpeg argument list for the configured output.
func (f *FFmpeg) Args() []string {
	args := []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-s", fmt.Sprintf("%dx%d", f.format.Width, f.format.Height),
		"-r", strconv.Itoa(f.format.FPS),
		"-i", "-",
		"-c:v", f.codec,
	}
	if f.codec == "mjpeg" {
		args = append(args, "-q:v", strconv.Itoa(f.quality))
	} else {
		args = append(args, "-pix_fmt", "yuv420p")
	}
	return append(args, f.path)
}

// Path is the output file.
func (f *FFmpeg) Path() string { return f.path }

// Frames is the number of frames accepted so far.
func (f *FFmpeg) Frames() int { return f.frames }

// Write sends one frame to the encoder.
func (f *FFmpeg) Write(fr *frame.RGB) error {
	if fr == nil || fr.Width != f.format.Width || fr.Height != f.format.Height || len(fr.Pix) != fr.Size() {
		return failure.Wrap(failure.ErrSink, "sink", "write frame", "frame does not match sink format", nil)
	}
	if _, err := f.stdin.Write(fr.Pix); err != nil {
		return failure.Wrap(failure.ErrSink, "sink", "write frame", f.stderr.String(), err)
	}
	f.frames++
	return nil
}

// Close flushes stdin and waits for ffmpeg to exit. Later calls return the
// first result.
func (f *FFmpeg) Close() error {
	f.closeOnce.Do(func() {
		cerr := f.stdin.Close()
		werr := f.cmd.Wait()
		switch {
		case werr != nil:
			f.closeErr = failure.Wrap(failure.ErrSink, "sink", "ffmpeg exit", f.stderr.String(), werr)
		case cerr != nil && !errors.Is(cerr, io.ErrClosedPipe):
			f.closeErr = failure.Wrap(failure.ErrSink, "sink", "close stdin", "", cerr)
		}
	})
	return f.closeErr
}

// tail keeps the last limit bytes written to it.
type tail struct {
	mu    sync.Mutex
	limit int
	buf   []byte
}

func (t *tail) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.limit; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
	}
	return len(p), nil
}

func (t *tail) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return strings.TrimSpace(string(t.buf))
}

var _ stimulus.Sink = (*FFmpeg)(nil)
