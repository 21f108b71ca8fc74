package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"zebranoise/internal/logging"
	"zebranoise/internal/stimulus"
)

// progressReporter draws a bar on terminals and falls back to sampled log
// lines everywhere else.
type progressReporter struct {
	bar     *progressbar.ProgressBar
	sampler *logging.ProgressSampler
	logger  *slog.Logger
	total   int
	written int
	stage   string
}

func newProgressReporter(w io.Writer, logger *slog.Logger, total int) *progressReporter {
	p := &progressReporter{logger: logger, total: total}
	if isTerminal(w) {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription("rendering"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
		return p
	}
	p.sampler = logging.NewProgressSampler(10)
	return p
}

func (p *progressReporter) observe(pr stimulus.Progress) {
	p.written++
	if p.bar != nil {
		if pr.Stage != p.stage {
			p.stage = pr.Stage
			p.bar.Describe(pr.Stage)
		}
		_ = p.bar.Add(1)
		return
	}
	if percent, ok := p.sampler.Sample(p.written, p.total, pr.Stage); ok {
		p.logger.Info("generation progress",
			logging.String(logging.FieldStage, pr.Stage),
			logging.Int("frames", p.written),
			logging.Int("total", p.total),
			logging.Float64("percent", percent),
		)
	}
}

func (p *progressReporter) finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
