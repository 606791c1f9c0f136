package cmdlog

import (
	"time"

	"agentbot/internal/logging"
	"agentbot/internal/metrics"
)

// Run executes a CLI command body, logging and counting its result.
func Run(cmd string, f func() error) error {
	metrics.IncCommandRun(cmd)
	start := time.Now()
	err := f()
	fields := map[string]any{"command": cmd, "duration_ms": time.Since(start).Milliseconds()}
	if err != nil {
		metrics.IncCommandError(cmd)
		fields["error"] = err.Error()
		logging.Error("command_error", fields)
	} else {
		logging.Info("command_ok", fields)
	}
	return err
}
