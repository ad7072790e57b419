package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger builds the stderr logger shared by every subcommand.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// stageTimer times one pipeline stage (generate, layout, render) and
// reports it as a structured log line with an elapsed field.
type stageTimer struct {
	logger *log.Logger
	stage  string
	start  time.Time
}

func startStage(l *log.Logger, stage string) *stageTimer {
	l.Debug("stage started", "stage", stage)
	return &stageTimer{logger: l, stage: stage, start: time.Now()}
}

func (s *stageTimer) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "stage", s.stage, "elapsed", time.Since(s.start).Round(time.Millisecond))
	s.logger.Info(msg, keyvals...)
}
