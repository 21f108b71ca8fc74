package failure

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfiguration = errors.New("configuration error")
	ErrSink          = errors.New("sink failure")
	ErrExternalTool  = errors.New("external tool error")
	ErrValidation    = errors.New("validation error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. A nil marker is
// treated as ErrConfiguration since every other failure site names its marker.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrConfiguration
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Configf is shorthand for a configuration error without an underlying cause.
func Configf(component, format string, args ...any) error {
	return Wrap(ErrConfiguration, component, "", fmt.Sprintf(format, args...), nil)
}

// Category maps an error to a stable label used for log event types and
// exit summaries.
func Category(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrSink):
		return "sink"
	case errors.Is(err, ErrExternalTool):
		return "external_tool"
	case errors.Is(err, ErrValidation):
		return "validation"
	default:
		return "internal"
	}
}

// Hint returns a short next step for the category of err.
func Hint(err error) string {
	switch Category(err) {
	case "configuration":
		return "fix the parameter named in the error or run 'zebranoise config validate'"
	case "sink":
		return "check ffmpeg output above and free space in the output directory"
	case "external_tool":
		return "run 'zebranoise deps' to confirm ffmpeg and ffprobe are installed"
	case "validation":
		return "re-run generate; the encoded file does not match the planned frames"
	default:
		return "check logs for details"
	}
}

// AlignmentWarning reports that the nominal frame count was padded so that a
// periodic filter divides it. It is a diagnostic, not a failure.
type AlignmentWarning struct {
	Nominal   int
	Corrected int
	Added     int
	Period    int
}

func (w *AlignmentWarning) Error() string {
	if w == nil {
		return ""
	}
	return fmt.Sprintf("adding %d extra timepoints so %d frames align to filter period %d (now %d)", w.Added, w.Nominal, w.Period, w.Corrected)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "stimulus failure"
	}
	return strings.Join(parts, ": ")
}
