package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// HostProber reports local machine metrics.
type HostProber interface {
	Probe(ctx context.Context) HostStats
}

// HostProbe reads CPU, memory, load and uptime through gopsutil.
type HostProbe struct{}

func NewHostProbe() *HostProbe {
	return &HostProbe{}
}

func (HostProbe) Probe(ctx context.Context) HostStats {
	var stats HostStats
	var errs []error

	// Interval 0 compares against the previous call, so it never sleeps.
	if pct, err := cpu.PercentWithContext(ctx, 0, false); err != nil {
		errs = append(errs, fmt.Errorf("cpu: %w", err))
	} else if len(pct) > 0 {
		stats.CPUPercent = pct[0]
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("memory: %w", err))
	} else {
		stats.MemUsedPercent = vm.UsedPercent
	}

	if avg, err := load.AvgWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("load: %w", err))
	} else {
		stats.Load1 = avg.Load1
	}

	if up, err := host.UptimeWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("uptime: %w", err))
	} else {
		stats.UptimeSeconds = up
	}

	if err := errors.Join(errs...); err != nil {
		stats.Error = err.Error()
	}
	return stats
}
