package logging

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

const logTimestampLayout = "15:04:05.000"

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.In(time.Local).Format(logTimestampLayout)
}

// formatValue renders v for the console handler. With quote set, strings that
// would break the "key: value" layout are quoted.
func formatValue(v slog.Value, quote bool) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		// Scales and percentages read better without float noise.
		return strconv.FormatFloat(v.Float64(), 'g', 6, 64)
	case slog.KindDuration:
		return v.Duration().Round(time.Millisecond).String()
	case slog.KindTime:
		return v.Time().UTC().Format(time.RFC3339)
	}

	var s string
	if err, ok := v.Any().(error); ok && v.Kind() == slog.KindAny {
		s = err.Error()
	} else if v.Kind() == slog.KindAny {
		s = fmt.Sprint(v.Any())
	} else {
		s = v.String()
	}
	if quote && (s == "" || strings.ContainsFunc(s, unsafeRune)) {
		return strconv.Quote(s)
	}
	return s
}

func unsafeRune(r rune) bool { return r <= ' ' || r == '"' || r == ':' }
