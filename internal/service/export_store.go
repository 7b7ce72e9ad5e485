package service

import (
	"sync"
	"time"
)

// Export job lifecycle states.
const (
	ExportStatusQueued     = "QUEUED"
	ExportStatusProcessing = "PROCESSING"
	ExportStatusCompleted  = "COMPLETED"
	ExportStatusFailed     = "FAILED"
)

// ExportJob tracks one export request through the background queue. Jobs
// are short-lived bookkeeping, kept in memory with a TTL; the artifact on
// disk is the durable output.
type ExportJob struct {
	ID          string
	OrgID       string
	Granularity string
	Date        string
	Format      string
	Status      string
	FileName    string
	Token       string
	Error       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type exportStore struct {
	mu   sync.Mutex
	jobs map[string]*ExportJob
	ttl  time.Duration
}

func newExportStore(ttl time.Duration) *exportStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &exportStore{jobs: make(map[string]*ExportJob), ttl: ttl}
}

func (s *exportStore) put(job *ExportJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job.UpdatedAt = time.Now().UTC()
	s.jobs[job.ID] = job
}

func (s *exportStore) get(id string) (*ExportJob, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, false
	}
	if time.Since(job.UpdatedAt) > s.ttl {
		delete(s.jobs, id)
		return nil, false
	}
	copied := *job
	return &copied, true
}

func (s *exportStore) update(id string, fn func(*ExportJob)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return false
	}
	fn(job)
	job.UpdatedAt = time.Now().UTC()
	return true
}

func (s *exportStore) purgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, job := range s.jobs {
		if time.Since(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
			removed++
		}
	}
	return removed
}
