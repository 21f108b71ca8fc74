package output

import (
	"context"
	"fmt"
	"math"
	"strings"

	"zebranoise/internal/failure"
	"zebranoise/internal/media/ffprobe"
	"zebranoise/internal/stimulus"
)

var inspect = ffprobe.Inspect

// Verification is the decoded view of an encoded stimulus.
type Verification struct {
	Frames int
	Width  int
	Height int
	FPS    float64
	Codec  string
}

// Verify decodes path with ffprobe and checks the frame count, geometry,
// and rate against plan. Mismatches carry failure.ErrValidation; a failing
// ffprobe carries failure.ErrExternalTool.
func Verify(ctx context.Context, binary, path string, plan stimulus.Plan, fps int) (Verification, error) {
	res, err := inspect(ctx, binary, path, ffprobe.Options{CountFrames: true})
	if err != nil {
		return Verification{}, failure.Wrap(failure.ErrExternalTool, "verify", "ffprobe", path, err)
	}
	video, ok := res.Video()
	if !ok {
		return Verification{}, failure.Wrap(failure.ErrValidation, "verify", "", "no video stream in "+path, nil)
	}
	v := Verification{
		Frames: video.FrameCount(),
		Width:  video.Width,
		Height: video.Height,
		FPS:    video.FrameRate(),
		Codec:  video.CodecName,
	}

	var problems []string
	if v.Frames != plan.Total {
		problems = append(problems, fmt.Sprintf("frames %d, expected %d", v.Frames, plan.Total))
	}
	if v.Width != plan.Width || v.Height != plan.Height {
		problems = append(problems, fmt.Sprintf("size %dx%d, expected %dx%d", v.Width, v.Height, plan.Width, plan.Height))
	}
	if v.FPS > 0 && math.Abs(v.FPS-float64(fps)) > 0.01 {
		problems = append(problems, fmt.Sprintf("rate %.3f, expected %d", v.FPS, fps))
	}
	if len(problems) > 0 {
		return v, failure.Wrap(failure.ErrValidation, "verify", "", strings.Join(problems, "; "), nil)
	}
	return v, nil
}
