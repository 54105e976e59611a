package errors

import (
	"github.com/go-drift/visualds/pkg/logging"
	"github.com/rs/zerolog"
)

// LogHandler is an ErrorHandler that writes reports to the "errors" logger.
type LogHandler struct {
	// Verbose adds stack traces to panic reports.
	Verbose bool
}

func (h *LogHandler) logger() zerolog.Logger {
	return logging.Component("errors")
}

// HandleError logs a VizError.
func (h *LogHandler) HandleError(err *VizError) {
	if err == nil {
		return
	}
	l := h.logger()
	l.Error().
		Str("op", err.Op).
		Stringer("kind", err.Kind).
		Err(err.Err).
		Msg("visualizer error")
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	l := h.logger()
	ev := l.Error().Str("op", err.Op).Interface("value", err.Value)
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg("recovered panic")
}
