package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/msa-adp-api/internal/models"
)

type orchestratorBuilder struct {
	mu       sync.Mutex
	views    []string
	rebuilds []string
	gates    map[string]chan struct{}
}

func (b *orchestratorBuilder) result(orgID string, granularity models.ViewGranularity, ref time.Time) *models.TimetableView {
	return &models.TimetableView{OrgID: orgID, Granularity: granularity, RefDate: midnightUTC(ref)}
}

func (b *orchestratorBuilder) View(ctx context.Context, orgID string, granularity models.ViewGranularity, ref time.Time) (*models.TimetableView, error) {
	key := models.DateKey(ref)
	b.mu.Lock()
	b.views = append(b.views, key)
	gate := b.gates[key]
	b.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return b.result(orgID, granularity, ref), nil
}

func (b *orchestratorBuilder) Rebuild(ctx context.Context, orgID string, granularity models.ViewGranularity, ref time.Time) (*models.TimetableView, error) {
	b.mu.Lock()
	b.rebuilds = append(b.rebuilds, models.DateKey(ref))
	b.mu.Unlock()
	return b.result(orgID, granularity, ref), nil
}

func (b *orchestratorBuilder) viewCalls(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	count := 0
	for _, k := range b.views {
		if k == key {
			count++
		}
	}
	return count
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestOrchestratorCoalescesConcurrentRequests(t *testing.T) {
	dateKey := "2024-03-11"
	gate := make(chan struct{})
	builder := &orchestratorBuilder{gates: map[string]chan struct{}{dateKey: gate}}
	orch := NewOrchestrator(builder, nil, nil)

	ref := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	var wg sync.WaitGroup
	results := make([]*models.TimetableView, 4)
	errs := make([]error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = orch.Request(context.Background(), "org-1", models.GranularityWeek, ref)
		}(i)
	}

	waitFor(t, func() bool { return builder.viewCalls(dateKey) == 1 })
	close(gate)
	wg.Wait()

	for i := 0; i < 4; i++ {
		require.NoError(t, errs[i])
		require.NotNil(t, results[i])
	}
	assert.Equal(t, 1, builder.viewCalls(dateKey), "concurrent requests share one fetch")
}

func TestOrchestratorNewKeySupersedesInFlight(t *testing.T) {
	keyA := "2024-03-11"
	gateA := make(chan struct{})
	builder := &orchestratorBuilder{gates: map[string]chan struct{}{keyA: gateA}}
	orch := NewOrchestrator(builder, nil, nil)

	refA := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	refB := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)

	var viewA *models.TimetableView
	var errA error
	done := make(chan struct{})
	go func() {
		viewA, errA = orch.Request(context.Background(), "org-1", models.GranularityDay, refA)
		close(done)
	}()

	waitFor(t, func() bool { return builder.viewCalls(keyA) == 1 })

	// Navigating to another date supersedes the fetch in flight.
	viewB, err := orch.Request(context.Background(), "org-1", models.GranularityDay, refB)
	require.NoError(t, err)
	assert.Equal(t, refB, viewB.RefDate)

	// Let the superseded fetch finish: its result is discarded and the
	// waiter retries internally. The caller never sees a stale failure.
	close(gateA)
	<-done
	require.NoError(t, errA)
	require.NotNil(t, viewA)
	assert.Equal(t, refA, viewA.RefDate)
	assert.Equal(t, 2, builder.viewCalls(keyA), "superseded waiter refetches")
}

func TestOrchestratorRequestsInDifferentOrgsDoNotInterfere(t *testing.T) {
	builder := &orchestratorBuilder{}
	orch := NewOrchestrator(builder, nil, nil)

	ref := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	viewA, err := orch.Request(context.Background(), "org-1", models.GranularityDay, ref)
	require.NoError(t, err)
	viewB, err := orch.Request(context.Background(), "org-2", models.GranularityDay, ref)
	require.NoError(t, err)
	assert.Equal(t, "org-1", viewA.OrgID)
	assert.Equal(t, "org-2", viewB.OrgID)
}

func TestOrchestratorRefreshForcesRebuild(t *testing.T) {
	builder := &orchestratorBuilder{}
	orch := NewOrchestrator(builder, nil, nil)

	ref := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	view, err := orch.Refresh(context.Background(), "org-1", models.GranularityDay, ref)
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Empty(t, builder.views)
	assert.Equal(t, []string{"2024-03-11"}, builder.rebuilds)
}
