// Package sysinfo собирает сведения о хосте и потреблении ресурсов для health-check'а.
package sysinfo

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"golang.org/x/sync/errgroup"

	"github.com/sir_venger/blob_functions/internal/models"
)

// Collector отдаёт снимок платформы и ресурсов.
type Collector interface {
	Collect(ctx context.Context) (models.SystemInfo, models.Resources, error)
}

// CollectorFunc позволяет использовать функцию как Collector.
type CollectorFunc func(ctx context.Context) (models.SystemInfo, models.Resources, error)

func (f CollectorFunc) Collect(ctx context.Context) (models.SystemInfo, models.Resources, error) {
	return f(ctx)
}

// Host читает метрики текущей машины через gopsutil.
type Host struct {
	// CPUSample — окно, за которое усредняется загрузка CPU.
	CPUSample time.Duration
}

var _ Collector = (*Host)(nil)

// Collect измеряет CPU параллельно с чтением памяти и сведений о платформе:
// замер CPU блокируется на CPUSample.
func (h *Host) Collect(ctx context.Context) (models.SystemInfo, models.Resources, error) {
	sys := models.SystemInfo{
		GoVersion:    runtime.Version(),
		Architecture: runtime.GOARCH,
		Platform:     runtime.GOOS,
	}
	var res models.Resources

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		pct, err := cpu.PercentWithContext(egCtx, h.CPUSample, false)
		if err != nil {
			return fmt.Errorf("cpu percent: %w", err)
		}
		if len(pct) > 0 {
			res.CPUPercent = finite(pct[0])
		}
		return nil
	})
	eg.Go(func() error {
		vm, err := mem.VirtualMemoryWithContext(egCtx)
		if err != nil {
			return fmt.Errorf("virtual memory: %w", err)
		}
		res.MemoryPercent = finite(vm.UsedPercent)
		res.MemoryAvailable = vm.Available
		res.MemoryUsed = vm.Used
		res.MemoryTotal = vm.Total
		return nil
	})
	eg.Go(func() error {
		info, err := host.InfoWithContext(egCtx)
		if err != nil {
			return fmt.Errorf("host info: %w", err)
		}
		if info.OS != "" {
			sys.Platform = info.OS
		}
		sys.PlatformVersion = info.KernelVersion
		if sys.PlatformVersion == "" {
			sys.PlatformVersion = info.PlatformVersion
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		return models.SystemInfo{}, models.Resources{}, err
	}

	return sys, res, nil
}

// finite приводит значение к конечному неотрицательному числу, округлённому до десятых.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return math.Round(v*10) / 10
}
