package blobsvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepProbes_RemovesOnlyStale(t *testing.T) {
	b := newFakeBackend()
	now := time.Now()
	b.objects["connection-test-1.txt"] = fakeObject{modified: now.Add(-2 * time.Hour)}
	b.objects["connection-test-2.txt"] = fakeObject{modified: now.Add(-time.Minute)}
	b.objects["report.pdf"] = fakeObject{modified: now.Add(-48 * time.Hour)}
	b.objects["connection-test-results.csv"] = fakeObject{modified: now.Add(-48 * time.Hour)}
	b.objects["connection-test-old.txt"] = fakeObject{modified: now.Add(-48 * time.Hour)}

	svc := newTestService(b, nil)
	svc.Now = func() time.Time { return now }

	removed, err := svc.SweepProbes(context.Background(), time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, []string{"connection-test-1.txt"}, b.deleted)
	assert.Contains(t, b.objects, "connection-test-2.txt")
	assert.Contains(t, b.objects, "report.pdf")
	assert.Contains(t, b.objects, "connection-test-results.csv")
	assert.Contains(t, b.objects, "connection-test-old.txt")
}

func TestSweepProbes_ListError(t *testing.T) {
	b := newFakeBackend()
	b.fail("list", errors.New("denied"))

	_, err := newTestService(b, nil).SweepProbes(context.Background(), time.Hour)
	assert.EqualError(t, err, "denied")
}

func TestProbeCreatedAt(t *testing.T) {
	ts, ok := probeCreatedAt("connection-test-1754143850.txt")
	require.True(t, ok)
	assert.Equal(t, int64(1754143850), ts.Unix())

	for _, name := range []string{"report.pdf", "connection-test-x.txt", "connection-test-1.bin"} {
		_, ok = probeCreatedAt(name)
		assert.False(t, ok, name)
	}
}

func TestStartProbeSweeper(t *testing.T) {
	b := newFakeBackend()
	b.objects["connection-test-1.txt"] = fakeObject{modified: time.Now().Add(-time.Hour)}
	svc := newTestService(b, nil)

	stop := svc.StartProbeSweeper(time.Minute, 10*time.Millisecond)
	t.Cleanup(stop)

	require.Eventually(t, func() bool {
		b.mu.Lock()
		defer b.mu.Unlock()
		return len(b.deleted) == 1
	}, 2*time.Second, 10*time.Millisecond)

	stop()
	stop()

	// нулевой ttl отключает очистку
	disabled := svc.StartProbeSweeper(0, time.Second)
	disabled()
}
