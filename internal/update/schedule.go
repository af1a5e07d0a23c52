package update

import (
	"context"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// scheduleParser accepts standard five field expressions and descriptors
// such as "@daily" or "@every 6h".
var scheduleParser = cron.NewParser(
	cron.Minute |
		cron.Hour |
		cron.Dom |
		cron.Month |
		cron.Dow |
		cron.Descriptor,
)

// ParseSchedule parses a watch schedule.
func ParseSchedule(expr string) (cron.Schedule, error) {
	clean := strings.TrimSpace(expr)
	if clean == "" {
		return nil, fmt.Errorf("schedule is required")
	}
	s, err := scheduleParser.Parse(clean)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", clean, err)
	}
	return s, nil
}

// Check plans once and logs whether an install or update is available. It
// never starts the setup script.
func (m *Manager) Check(ctx context.Context) (Plan, error) {
	p, err := m.Plan(ctx)
	if err != nil {
		m.Log.Error("update check failed", "err", err)
		return p, err
	}
	switch p.Decision.Action {
	case ActionInstall:
		m.Log.Warn("Agoric SDK not installed; run agoricup install")
	case ActionUpdate:
		m.Log.Warn(NewVersionMsg+"; run agoricup install", "local", p.LocalRef, "remote", p.RemoteRef)
	default:
		m.Log.Info("No update", "reason", p.Decision.Reason, "version", p.Installation.Version)
	}
	return p, nil
}

// Watch runs Check now and on every tick of expr until ctx is done.
// Overlapping checks are skipped.
func (m *Manager) Watch(ctx context.Context, expr string) error {
	sched, err := ParseSchedule(expr)
	if err != nil {
		return err
	}
	c := cron.New(
		cron.WithParser(scheduleParser),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	c.Schedule(sched, cron.FuncJob(func() { _, _ = m.Check(ctx) }))

	_, _ = m.Check(ctx)
	m.Log.Info("Watching for Agoric SDK updates", "schedule", expr)
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
