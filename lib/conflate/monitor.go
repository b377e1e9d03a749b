package conflate

import (
	"context"
	"log/slog"
)

// Monitor observes pipeline progress and carries cancellation requests back
// into it. Every pass polls IsCancelRequested between features and stops
// early when it reports true; an early stop is not an error, the pass
// returns whatever it built so far.
type Monitor interface {
	// AllowCancellationRequests marks the point after which cancellation
	// is honored.
	AllowCancellationRequests()
	IsCancelRequested() bool
	Report(message string)
	ReportProgress(current, total int, unit string)
}

// NullMonitor discards progress and never requests cancellation.
type NullMonitor struct{}

func (NullMonitor) AllowCancellationRequests()                     {}
func (NullMonitor) IsCancelRequested() bool                        { return false }
func (NullMonitor) Report(message string)                          {}
func (NullMonitor) ReportProgress(current, total int, unit string) {}

// TaskMonitor narrates progress through slog and maps context cancellation
// onto the monitor's cancellation flag. The flag only answers true once
// cancellation requests have been allowed.
type TaskMonitor struct {
	ctx         context.Context
	allowCancel bool
}

func NewTaskMonitor(ctx context.Context) *TaskMonitor {
	return &TaskMonitor{ctx: ctx}
}

func (m *TaskMonitor) AllowCancellationRequests() {
	m.allowCancel = true
}

func (m *TaskMonitor) IsCancelRequested() bool {
	return m.allowCancel && m.ctx.Err() != nil
}

func (m *TaskMonitor) Report(message string) {
	slog.InfoContext(m.ctx, message)
}

func (m *TaskMonitor) ReportProgress(current, total int, unit string) {
	slog.DebugContext(m.ctx, "progress", "current", current, "total", total, "unit", unit)
}
