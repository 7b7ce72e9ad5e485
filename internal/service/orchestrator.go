package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/msa-adp-api/internal/models"
	appErrors "github.com/noah-isme/msa-adp-api/pkg/errors"
)

// ViewKey identifies one timetable view request.
type ViewKey struct {
	OrgID       string
	Granularity models.ViewGranularity
	RefDate     string
}

type viewBuilder interface {
	View(ctx context.Context, orgID string, granularity models.ViewGranularity, refDate time.Time) (*models.TimetableView, error)
	Rebuild(ctx context.Context, orgID string, granularity models.ViewGranularity, refDate time.Time) (*models.TimetableView, error)
}

type flight struct {
	done       chan struct{}
	view       *models.TimetableView
	err        error
	generation uint64
}

// Orchestrator serializes timetable fetches per org. Concurrent requests
// for the same view join one in-flight fetch instead of duplicating work,
// and a request for a different view in the same org supersedes whatever is
// in flight: the console shows one view at a time, so the latest navigation
// wins and results for abandoned views are discarded rather than applied.
//
// Superseded waiters retry against the current generation internally, so a
// caller always receives a live view or a real error, never a stale-result
// failure.
type Orchestrator struct {
	builder viewBuilder
	metrics *MetricsService
	logger  *zap.Logger

	mu      sync.Mutex
	flights map[ViewKey]*flight
	orgGen  map[string]uint64
}

// NewOrchestrator constructs the orchestrator.
func NewOrchestrator(builder viewBuilder, metrics *MetricsService, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		builder: builder,
		metrics: metrics,
		logger:  logger,
		flights: make(map[ViewKey]*flight),
		orgGen:  make(map[string]uint64),
	}
}

func (o *Orchestrator) start(key ViewKey, generation uint64, refDate time.Time, rebuild bool) *flight {
	f := &flight{done: make(chan struct{}), generation: generation}
	o.flights[key] = f
	o.metrics.RecordFetchStarted(string(key.Granularity))

	go func() {
		// Fetches outlive the request that started them so coalesced
		// waiters are not cut off by the first caller's deadline.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if rebuild {
			f.view, f.err = o.builder.Rebuild(ctx, key.OrgID, key.Granularity, refDate)
		} else {
			f.view, f.err = o.builder.View(ctx, key.OrgID, key.Granularity, refDate)
		}

		o.mu.Lock()
		if o.flights[key] == f {
			delete(o.flights, key)
		}
		o.mu.Unlock()
		close(f.done)
	}()
	return f
}

func (o *Orchestrator) request(ctx context.Context, key ViewKey, refDate time.Time, rebuild bool) (*models.TimetableView, error) {
	supersede := true
	for {
		o.mu.Lock()
		gen := o.orgGen[key.OrgID]

		if f, ok := o.flights[key]; ok && !rebuild && f.generation == gen {
			o.metrics.RecordCoalesced()
			o.mu.Unlock()
			view, err := o.wait(ctx, key, f)
			if !errors.Is(err, appErrors.ErrStaleResult) {
				return view, err
			}
			supersede = false
			continue
		}

		if supersede {
			gen++
			o.orgGen[key.OrgID] = gen
		}
		f := o.start(key, gen, refDate, rebuild)
		o.mu.Unlock()

		view, err := o.wait(ctx, key, f)
		if !errors.Is(err, appErrors.ErrStaleResult) {
			return view, err
		}
		// Superseded mid-flight: retry at the current generation without
		// bumping it again, otherwise two navigations could starve each
		// other indefinitely.
		supersede = false
		rebuild = false
	}
}

// wait blocks on a flight and reports a superseded result as
// appErrors.ErrStaleResult. request retries on that sentinel, so it never
// reaches a caller.
func (o *Orchestrator) wait(ctx context.Context, key ViewKey, f *flight) (*models.TimetableView, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-f.done:
	}

	o.mu.Lock()
	stale := f.generation != o.orgGen[key.OrgID]
	o.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	if stale {
		o.metrics.RecordStaleDiscard()
		o.logger.Debug("discarding superseded timetable result",
			zap.String("org_id", key.OrgID),
			zap.String("granularity", string(key.Granularity)),
			zap.String("ref_date", key.RefDate))
		return nil, appErrors.ErrStaleResult
	}
	return f.view, nil
}

// Request serves a view, joining an in-flight fetch for the same key when
// one exists.
func (o *Orchestrator) Request(ctx context.Context, orgID string, granularity models.ViewGranularity, refDate time.Time) (*models.TimetableView, error) {
	key := ViewKey{OrgID: orgID, Granularity: granularity, RefDate: models.DateKey(refDate)}
	return o.request(ctx, key, refDate, false)
}

// Refresh forces a rebuild, bypassing cached views.
func (o *Orchestrator) Refresh(ctx context.Context, orgID string, granularity models.ViewGranularity, refDate time.Time) (*models.TimetableView, error) {
	key := ViewKey{OrgID: orgID, Granularity: granularity, RefDate: models.DateKey(refDate)}
	return o.request(ctx, key, refDate, true)
}
