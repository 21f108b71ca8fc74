package output

import (
	"context"
	"errors"
	"strings"
	"testing"

	"zebranoise/internal/failure"
	"zebranoise/internal/media/ffprobe"
	"zebranoise/internal/stimulus"
)

func stubInspect(t *testing.T, result ffprobe.Result, err error) *ffprobe.Options {
	t.Helper()
	var seen ffprobe.Options
	original := inspect
	inspect = func(_ context.Context, _, _ string, opts ffprobe.Options) (ffprobe.Result, error) {
		seen = opts
		return result, err
	}
	t.Cleanup(func() { inspect = original })
	return &seen
}

func TestVerify(t *testing.T) {
	plan := stimulus.Plan{Total: 272, Width: 64, Height: 32}
	good := ffprobe.Result{Streams: []ffprobe.Stream{{
		CodecType: "video", CodecName: "mjpeg", Width: 64, Height: 32, RFrameRate: "30/1", NbReadFrames: "272",
	}}}

	tests := []struct {
		name    string
		mutate  func(*ffprobe.Stream)
		wantErr string
	}{
		{"match", func(*ffprobe.Stream) {}, ""},
		{"short", func(s *ffprobe.Stream) { s.NbReadFrames = "270" }, "frames 270, expected 272"},
		{"size", func(s *ffprobe.Stream) { s.Height = 36 }, "size 64x36"},
		{"rate", func(s *ffprobe.Stream) { s.RFrameRate = "25/1" }, "rate 25.000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := good
			res.Streams = append([]ffprobe.Stream(nil), good.Streams...)
			tt.mutate(&res.Streams[0])
			seen := stubInspect(t, res, nil)

			v, err := Verify(context.Background(), "ffprobe", "x.avi", plan, 30)
			if !seen.CountFrames {
				t.Fatal("expected frame counting to be requested")
			}
			if tt.wantErr == "" {
				if err != nil || v.Frames != 272 || v.Codec != "mjpeg" {
					t.Fatalf("Verify = %+v, %v", v, err)
				}
				return
			}
			if !errors.Is(err, failure.ErrValidation) || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected validation error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestVerifyToolFailure(t *testing.T) {
	stubInspect(t, ffprobe.Result{}, errors.New("exec: not found"))
	if _, err := Verify(context.Background(), "ffprobe", "x.avi", stimulus.Plan{}, 30); !errors.Is(err, failure.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}

	stubInspect(t, ffprobe.Result{}, nil)
	if _, err := Verify(context.Background(), "ffprobe", "x.avi", stimulus.Plan{}, 30); !errors.Is(err, failure.ErrValidation) {
		t.Fatalf("expected validation error for missing stream, got %v", err)
	}
}
