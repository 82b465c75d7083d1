// Package report holds score collaborators that receive finished runs.
package report

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-world/internal/sim"
)

type fanout []sim.Reporter

// Fanout returns a reporter that forwards each result to every non-nil
// reporter in order and joins their errors.
func Fanout(reporters ...sim.Reporter) sim.Reporter {
	var f fanout
	for _, r := range reporters {
		if r != nil {
			f = append(f, r)
		}
	}
	return f
}

func (f fanout) Report(ctx context.Context, r sim.Result) error {
	var errs []error
	for _, rep := range f {
		if err := rep.Report(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogReporter writes each finished run to a logger.
type LogReporter struct {
	Logger *log.Logger
}

// Report implements sim.Reporter.
func (l LogReporter) Report(ctx context.Context, r sim.Result) error {
	if l.Logger == nil {
		return nil
	}
	kv := []any{
		"game", r.GameID,
		"status", r.Status,
		"score", r.Score,
		"elapsed", r.Elapsed,
		"moves", r.Moves,
	}
	if r.Reason != "" {
		kv = append(kv, "reason", r.Reason)
	}
	if r.Destination != "" {
		kv = append(kv, "destination", r.Destination)
	}
	l.Logger.Info("run finished", kv...)
	return nil
}
