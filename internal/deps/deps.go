package deps

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

var commandContext = exec.CommandContext

// Requirement defines an external binary zebranoise relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	// VersionArg, when set, is passed to the binary to read its version line.
	VersionArg string
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Path        string
	Description string
	Optional    bool
	Available   bool
	Version     string
	Detail      string
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(ctx context.Context, requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		path, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Path = path
		status.Available = true
		if req.VersionArg != "" {
			status.Version = probeVersion(ctx, path, req.VersionArg)
		}
		results = append(results, status)
	}
	return results
}

// Requirements lists the binaries a run needs. ffmpeg is only required for
// video output; ffprobe only when verification is on.
func Requirements(ffmpeg, ffprobe string, video, verify bool) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     Resolve(ffmpeg, "ffmpeg"),
			Description: "Encodes the stimulus video",
			Optional:    !video,
			VersionArg:  "-version",
		},
		{
			Name:        "FFprobe",
			Command:     Resolve(ffprobe, "ffprobe"),
			Description: "Verifies and inspects encoded stimuli",
			Optional:    !verify,
			VersionArg:  "-version",
		},
	}
}

// Missing returns the required dependencies that are unavailable.
func Missing(statuses []Status) []Status {
	var out []Status
	for _, s := range statuses {
		if !s.Available && !s.Optional {
			out = append(out, s)
		}
	}
	return out
}

// Resolve returns binary trimmed, or fallback when it is empty.
func Resolve(binary, fallback string) string {
	if b := strings.TrimSpace(binary); b != "" {
		return b
	}
	return fallback
}

func probeVersion(ctx context.Context, path, arg string) string {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	out, err := commandContext(ctx, path, arg).Output() //nolint:gosec
	if err != nil {
		return ""
	}
	scanner := bufio.NewScanner(bytes.NewReader(out))
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text())
	}
	return ""
}
