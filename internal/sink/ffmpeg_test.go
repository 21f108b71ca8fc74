package sink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"zebranoise/internal/failure"
	"zebranoise/internal/frame"
	"zebranoise/internal/stimulus"
)

func stubFFmpeg(t *testing.T, mode string) (*[]string, string) {
	t.Helper()
	countPath := filepath.Join(t.TempDir(), "bytes")
	var captured []string
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		captured = append([]string{name}, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "FFMPEG_HELPER_MODE="+mode, "FFMPEG_HELPER_COUNT="+countPath)
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
	return &captured, countPath
}

func TestFFmpegArgs(t *testing.T) {
	f := &FFmpeg{codec: "mjpeg", quality: 3, path: "/tmp/out.avi", format: stimulus.Format{Width: 64, Height: 32, FPS: 30}}
	got := strings.Join(f.Args(), " ")
	want := "-hide_banner -loglevel error -y -f rawvideo -pix_fmt rgb24 -s 64x32 -r 30 -i - -c:v mjpeg -q:v 3 /tmp/out.avi"
	if got != want {
		t.Fatalf("args mismatch\n got: %s\nwant: %s", got, want)
	}

	f.codec = "libx264"
	got = strings.Join(f.Args(), " ")
	if !strings.Contains(got, "-c:v libx264 -pix_fmt yuv420p /tmp/out.avi") {
		t.Fatalf("expected yuv420p output for libx264, got %s", got)
	}
}

func TestFFmpegStreamsFrames(t *testing.T) {
	captured, countPath := stubFFmpeg(t, "consume")
	format := stimulus.Format{Width: 8, Height: 4, FPS: 10}
	opener := VideoOpener(filepath.Join(t.TempDir(), "out.avi"), WithBinary("/opt/ffmpeg"), WithQuality(5))

	s, err := opener.Open(context.Background(), format)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	for i := range 3 {
		if err := s.Write(frame.Solid(8, 4, uint8(i))); err != nil {
			t.Fatalf("Write %d: %v", i, err)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	if (*captured)[0] != "/opt/ffmpeg" {
		t.Fatalf("expected binary override, got %q", (*captured)[0])
	}
	if !strings.Contains(strings.Join(*captured, " "), "-q:v 5") {
		t.Fatalf("expected quality flag in %v", *captured)
	}
	data, err := os.ReadFile(countPath)
	if err != nil {
		t.Fatalf("read helper output: %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != strconv.Itoa(3*8*4*3) {
		t.Fatalf("ffmpeg received %s bytes, want %d", got, 3*8*4*3)
	}
	if s.(*FFmpeg).Frames() != 3 {
		t.Fatalf("Frames = %d", s.(*FFmpeg).Frames())
	}
}

func TestFFmpegFailureReportsStderr(t *testing.T) {
	stubFFmpeg(t, "failure")
	s, err := OpenFFmpeg(context.Background(), "out.avi", stimulus.Format{Width: 4, Height: 4, FPS: 10})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	for range 2 {
		_ = s.Write(frame.Solid(4, 4, 0))
	}
	err = s.Close()
	if !errors.Is(err, failure.ErrSink) {
		t.Fatalf("expected sink error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Unknown encoder") {
		t.Fatalf("expected stderr tail in error, got %v", err)
	}
}

func TestFFmpegRejectsMismatchedFrame(t *testing.T) {
	stubFFmpeg(t, "consume")
	s, err := OpenFFmpeg(context.Background(), "out.avi", stimulus.Format{Width: 4, Height: 4, FPS: 10})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()
	if err := s.Write(frame.Solid(8, 4, 0)); !errors.Is(err, failure.ErrSink) {
		t.Fatalf("expected sink error, got %v", err)
	}
}

func TestOpenFFmpegValidatesInput(t *testing.T) {
	if _, err := OpenFFmpeg(context.Background(), "", stimulus.Format{Width: 4, Height: 4, FPS: 10}); !errors.Is(err, failure.ErrSink) {
		t.Fatalf("expected sink error for empty path, got %v", err)
	}
	if _, err := OpenFFmpeg(context.Background(), "out.avi", stimulus.Format{}); !errors.Is(err, failure.ErrSink) {
		t.Fatalf("expected sink error for empty format, got %v", err)
	}
}

func TestOpenFFmpegMissingBinary(t *testing.T) {
	_, err := OpenFFmpeg(context.Background(), "out.avi", stimulus.Format{Width: 4, Height: 4, FPS: 10},
		WithBinary(filepath.Join(t.TempDir(), "no-such-ffmpeg")))
	if !errors.Is(err, failure.ErrSink) {
		t.Fatalf("expected sink error, got %v", err)
	}
}

func TestTailKeepsLastBytes(t *testing.T) {
	tl := &tail{limit: 5}
	fmt.Fprint(tl, "abc")
	fmt.Fprint(tl, "defgh")
	if got := tl.String(); got != "defgh" {
		t.Fatalf("tail = %q", got)
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	switch os.Getenv("FFMPEG_HELPER_MODE") {
	case "consume":
		n, _ := io.Copy(io.Discard, os.Stdin)
		_ = os.WriteFile(os.Getenv("FFMPEG_HELPER_COUNT"), []byte(strconv.FormatInt(n, 10)), 0o644)
		os.Exit(0)
	case "failure":
		fmt.Fprintln(os.Stderr, "Unknown encoder 'mjpeg'")
		os.Exit(1)
	default:
		os.Exit(0)
	}
}
