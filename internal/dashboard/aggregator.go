package dashboard

import (
	"context"
	"fmt"
	"log"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"
)

const gatherFailed = "Failed to gather data"

// Aggregator assembles a Snapshot from every source on each call. Nothing
// is cached between calls.
type Aggregator struct {
	tasksPath string
	costsPath string
	status    StatusProber
	host      HostProber // nil disables host metrics
	hourShift int
	now       func() time.Time
	sessions  func() []Session
}

// NewAggregator wires the aggregator. host may be nil.
func NewAggregator(tasksPath, costsPath string, status StatusProber, host HostProber, hourShift int) *Aggregator {
	return &Aggregator{
		tasksPath: tasksPath,
		costsPath: costsPath,
		status:    status,
		host:      host,
		hourShift: hourShift,
		now:       time.Now,
		sessions:  PlaceholderSessions,
	}
}

// Gather reads every source concurrently. Sources absorb their own
// failures, so an error here means a gatherer panicked; the caller must
// not use a partial snapshot.
func (a *Aggregator) Gather(ctx context.Context) (*Snapshot, error) {
	var (
		tasks  []Task
		system SystemStatus
		host   *HostStats
		costs  CostSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(guard("tasks", func() { tasks = ReadTasks(a.tasksPath) }))
	g.Go(guard("status", func() { system = a.status.Probe(gctx) }))
	g.Go(guard("costs", func() { costs = ReadCosts(a.costsPath) }))
	if a.host != nil {
		g.Go(guard("host", func() {
			stats := a.host.Probe(gctx)
			host = &stats
		}))
	}

	var sessions []Session
	sessionsErr := guard("sessions", func() { sessions = a.sessions() })()

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if sessionsErr != nil {
		return nil, sessionsErr
	}

	now := a.now()
	return &Snapshot{
		Timestamp: now.UTC().Format(TimestampFormat),
		Sessions:  sessions,
		Tasks:     tasks,
		System:    system,
		Host:      host,
		Costs:     costs,
		Mode:      CurrentMode(now, a.hourShift),
	}, nil
}

// Document returns the snapshot, or the error document when Gather fails.
func (a *Aggregator) Document(ctx context.Context) any {
	snap, err := a.Gather(ctx)
	if err != nil {
		log.Printf("dashboard: %v", err)
		return ErrorDocument{Error: gatherFailed}
	}
	return snap
}

// SystemStatus runs only the status probe.
func (a *Aggregator) SystemStatus(ctx context.Context) SystemStatus {
	return a.status.Probe(ctx)
}

// guard converts a panic in fn into an error so one broken source fails the
// whole gather instead of the process.
func guard(name string, fn func()) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("gathering %s: panic: %v\n%s", name, r, debug.Stack())
			}
		}()
		fn()
		return nil
	}
}
