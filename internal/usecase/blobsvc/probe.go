package blobsvc

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sir_venger/blob_functions/internal/models"
	"github.com/sir_venger/blob_functions/internal/storage"
)

// ProbePrefix — префикс имён временных объектов самопроверки.
const ProbePrefix = "connection-test-"

// probeState передаётся между шагами самопроверки.
type probeState struct {
	backend storage.Backend
	key     string
}

// probeStep — один шаг: сообщение при успехе либо ошибка.
type probeStep struct {
	name string
	run  func(ctx context.Context, st *probeState) (string, error)
}

// Probe последовательно проверяет подключение, доступ к контейнеру и права
// на чтение, запись и удаление. Первая ошибка останавливает цепочку; все шаги,
// оставшиеся в статусе failed, получают её текст.
func (s *Blobs) Probe(ctx context.Context) models.ConnectivityTests {
	results := models.NewConnectivityTests()
	st := &probeState{}

	for i, step := range s.probeSteps() {
		start := s.Now()
		msg, err := step.run(ctx, st)
		if err != nil {
			s.Logger.Warn().Err(err).Str("step", step.name).Msg("connectivity test failed")
			backfill(results, err)
			return results
		}
		results[i].Status = models.TestPassed
		results[i].Message = msg
		results[i].DurationMS = millis(s.Now().Sub(start))
	}

	return results
}

func (s *Blobs) probeSteps() []probeStep {
	return []probeStep{
		{models.ConnectionTest, s.stepConnect},
		{models.ContainerAccessTest, s.stepContainerAccess},
		{models.ReadPermissionTest, s.stepRead},
		{models.WritePermissionTest, s.stepWrite},
		{models.DeletePermissionTest, s.stepDelete},
	}
}

func (s *Blobs) stepConnect(ctx context.Context, st *probeState) (string, error) {
	backend, err := s.Open(ctx)
	if err != nil {
		return "", err
	}
	st.backend = backend
	return "Successfully connected to blob service", nil
}

func (s *Blobs) stepContainerAccess(ctx context.Context, st *probeState) (string, error) {
	if _, err := st.backend.ContainerProperties(ctx); err != nil {
		return "", err
	}
	return fmt.Sprintf("Container '%s' accessible", st.backend.Container()), nil
}

func (s *Blobs) stepRead(ctx context.Context, st *probeState) (string, error) {
	objects, err := st.backend.List(ctx, "", 1)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Read permission confirmed, found %d blobs", len(objects)), nil
}

func (s *Blobs) stepWrite(ctx context.Context, st *probeState) (string, error) {
	now := s.Now().UTC()
	st.key = fmt.Sprintf("%s%d.txt", ProbePrefix, now.Unix())
	body := fmt.Sprintf("Connection test file created at %s", now.Format(time.RFC3339Nano))

	if err := st.backend.Upload(ctx, st.key, strings.NewReader(body), int64(len(body)), "text/plain"); err != nil {
		return "", err
	}
	return fmt.Sprintf("Write permission confirmed, uploaded test file: %s", st.key), nil
}

func (s *Blobs) stepDelete(ctx context.Context, st *probeState) (string, error) {
	if err := st.backend.Delete(ctx, st.key); err != nil {
		return "", err
	}
	return fmt.Sprintf("Delete permission confirmed, deleted test file: %s", st.key), nil
}

// backfill записывает текст ошибки во все шаги, которые так и не прошли.
func backfill(results models.ConnectivityTests, err error) {
	msg := "Test failed: " + err.Error()
	for i := range results {
		if results[i].Status == models.TestFailed {
			results[i].Message = msg
		}
	}
}

// millis переводит длительность в миллисекунды с точностью до сотых.
func millis(d time.Duration) float64 {
	ms := float64(d) / float64(time.Millisecond)
	if ms < 0 || math.IsNaN(ms) {
		return 0
	}
	return math.Round(ms*100) / 100
}
