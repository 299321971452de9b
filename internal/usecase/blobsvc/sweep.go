package blobsvc

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"
)

const sweepBatch = 100

// StartProbeSweeper периодически удаляет probe-объекты, которые остались в
// контейнере после неудачного шага удаления. Возвращает функцию остановки.
func (s *Blobs) StartProbeSweeper(ttl time.Duration, every time.Duration) func() {
	if every <= 0 || ttl <= 0 {
		return func() {}
	}

	ctx, cancel := context.WithCancel(context.Background())
	ticker := time.NewTicker(every)
	var once sync.Once
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := s.SweepProbes(ctx, ttl); err != nil && ctx.Err() == nil {
					s.Logger.Warn().Err(err).Msg("probe sweep failed")
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return func() {
		once.Do(cancel)
	}
}

// SweepProbes удаляет probe-объекты старше ttl и возвращает их количество.
func (s *Blobs) SweepProbes(ctx context.Context, ttl time.Duration) (int, error) {
	backend, err := s.Open(ctx)
	if err != nil {
		return 0, err
	}

	objects, err := backend.List(ctx, ProbePrefix, sweepBatch)
	if err != nil {
		return 0, err
	}

	now := s.Now()
	removed := 0
	for _, obj := range objects {
		// Удаляются только объекты с именем вида connection-test-<unix>.txt.
		created, ok := probeCreatedAt(obj.Name)
		if !ok {
			continue
		}
		if obj.LastModified != nil {
			created = *obj.LastModified
		}
		if now.Sub(created) < ttl {
			continue
		}

		if err = backend.Delete(ctx, obj.Name); err != nil {
			return removed, err
		}
		removed++
	}

	if removed > 0 {
		s.Logger.Info().Int("removed", removed).Msg("stale probe objects removed")
	}
	return removed, nil
}

// probeCreatedAt извлекает момент создания из имени connection-test-<unix>.txt.
func probeCreatedAt(name string) (time.Time, bool) {
	rest, ok := strings.CutPrefix(name, ProbePrefix)
	if !ok {
		return time.Time{}, false
	}
	rest, ok = strings.CutSuffix(rest, ".txt")
	if !ok {
		return time.Time{}, false
	}
	sec, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(sec, 0), true
}
