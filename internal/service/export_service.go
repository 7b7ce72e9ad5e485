package service

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/msa-adp-api/internal/dto"
	"github.com/noah-isme/msa-adp-api/internal/models"
	appErrors "github.com/noah-isme/msa-adp-api/pkg/errors"
	"github.com/noah-isme/msa-adp-api/pkg/export"
	"github.com/noah-isme/msa-adp-api/pkg/jobs"
	"github.com/noah-isme/msa-adp-api/pkg/storage"
)

// JobTypeTimetableExport is the queue job type for timetable exports.
const JobTypeTimetableExport = "timetable_export"

type exportViewProvider interface {
	Build(ctx context.Context, orgID string, granularity models.ViewGranularity, refDate time.Time) (*models.TimetableView, error)
}

// ExportService renders timetable views to CSV or PDF in the background and
// serves the artifacts through signed download URLs.
type ExportService struct {
	views           exportViewProvider
	queue           *jobs.Queue
	store           *exportStore
	files           *storage.LocalStorage
	signer          *storage.SignedURLSigner
	csv             *export.CSVExporter
	pdf             *export.PDFExporter
	validator       *validator.Validate
	logger          *zap.Logger
	apiPrefix       string
	cleanupInterval time.Duration
	resultTTL       time.Duration
}

// NewExportService constructs the service and registers its queue handler.
// apiPrefix is the route prefix download URLs are served under.
func NewExportService(views exportViewProvider, queue *jobs.Queue, files *storage.LocalStorage, signer *storage.SignedURLSigner, validate *validator.Validate, logger *zap.Logger, apiPrefix string, resultTTL, cleanupInterval time.Duration) *ExportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cleanupInterval <= 0 {
		cleanupInterval = time.Hour
	}
	svc := &ExportService{
		views:           views,
		queue:           queue,
		store:           newExportStore(resultTTL),
		files:           files,
		signer:          signer,
		csv:             export.NewCSVExporter(),
		pdf:             export.NewPDFExporter(),
		validator:       validate,
		logger:          logger,
		apiPrefix:       strings.TrimSuffix(apiPrefix, "/"),
		cleanupInterval: cleanupInterval,
		resultTTL:       resultTTL,
	}
	if queue != nil {
		queue.Register(JobTypeTimetableExport, svc.handleExport)
	}
	return svc
}

type exportPayload struct {
	JobID       string
	OrgID       string
	Granularity models.ViewGranularity
	RefDate     time.Time
	Format      string
}

// Submit validates the request, records the job and enqueues it.
func (s *ExportService) Submit(ctx context.Context, orgID string, req dto.ExportRequest) (*dto.ExportJobResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	refDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}

	job := &ExportJob{
		ID:          uuid.NewString(),
		OrgID:       orgID,
		Granularity: req.Granularity,
		Date:        req.Date,
		Format:      req.Format,
		Status:      ExportStatusQueued,
		CreatedAt:   time.Now().UTC(),
	}
	s.store.put(job)

	err = s.queue.Enqueue(jobs.Job{
		ID:   job.ID,
		Type: JobTypeTimetableExport,
		Payload: exportPayload{
			JobID:       job.ID,
			OrgID:       orgID,
			Granularity: models.ViewGranularity(req.Granularity),
			RefDate:     refDate,
			Format:      req.Format,
		},
	})
	if err != nil {
		s.store.update(job.ID, func(j *ExportJob) {
			j.Status = ExportStatusFailed
			j.Error = "export queue unavailable"
		})
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue export")
	}

	return &dto.ExportJobResponse{ID: job.ID, Status: job.Status}, nil
}

// Status reports progress for one export job. Jobs belong to the org that
// submitted them; another org asking for the same id gets not-found, the
// same answer as for an id that never existed.
func (s *ExportService) Status(orgID, jobID string) (*dto.ExportStatusResponse, error) {
	job, ok := s.store.get(jobID)
	if !ok || job.OrgID != orgID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	resp := &dto.ExportStatusResponse{ID: job.ID, Status: job.Status, Format: job.Format}
	if job.Error != "" {
		resp.Error = &job.Error
	}
	if job.Status == ExportStatusCompleted && job.Token != "" {
		url := s.apiPrefix + "/exports/download/" + job.Token
		resp.ResultURL = &url
	}
	return resp, nil
}

// ResolveDownload validates a signed token and opens the artifact.
func (s *ExportService) ResolveDownload(token string) (*os.File, string, error) {
	jobID, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid download token")
	}
	if _, ok := s.store.get(jobID); !ok {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	file, err := s.files.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "export artifact no longer available")
	}
	return file, relPath, nil
}

func (s *ExportService) handleExport(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(exportPayload)
	if !ok {
		s.logger.Error("export job carries unexpected payload", zap.String("job_id", job.ID))
		return nil
	}

	s.store.update(payload.JobID, func(j *ExportJob) { j.Status = ExportStatusProcessing })

	view, err := s.views.Build(ctx, payload.OrgID, payload.Granularity, payload.RefDate)
	if err != nil {
		s.failJob(payload.JobID, "failed to assemble timetable view")
		return err
	}

	dataset := timetableDataset(view)
	title := fmt.Sprintf("Timetable %s %s", payload.Granularity, models.DateKey(payload.RefDate))

	var rendered []byte
	switch payload.Format {
	case "pdf":
		rendered, err = s.pdf.Render(dataset, title)
	default:
		rendered, err = s.csv.Render(dataset)
	}
	if err != nil {
		s.failJob(payload.JobID, "failed to render export")
		return err
	}

	fileName := fmt.Sprintf("timetables/%s-%s-%s.%s", payload.OrgID, payload.Granularity, models.DateKey(payload.RefDate), payload.Format)
	if _, err := s.files.Save(fileName, rendered); err != nil {
		s.failJob(payload.JobID, "failed to store export artifact")
		return err
	}

	token, _, err := s.signer.Generate(payload.JobID, fileName)
	if err != nil {
		s.failJob(payload.JobID, "failed to sign download url")
		return err
	}

	s.store.update(payload.JobID, func(j *ExportJob) {
		j.Status = ExportStatusCompleted
		j.FileName = fileName
		j.Token = token
	})
	s.logger.Info("export completed",
		zap.String("job_id", payload.JobID),
		zap.String("org_id", payload.OrgID),
		zap.String("file", fileName))
	return nil
}

func (s *ExportService) failJob(jobID, message string) {
	s.store.update(jobID, func(j *ExportJob) {
		j.Status = ExportStatusFailed
		j.Error = message
	})
}

// StartCleanup purges expired jobs and artifacts until ctx is cancelled.
func (s *ExportService) StartCleanup(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed := s.store.purgeExpired()
				deleted, err := s.files.CleanupOlderThan(s.resultTTL)
				if err != nil {
					s.logger.Warn("export cleanup failed", zap.Error(err))
					continue
				}
				if removed > 0 || len(deleted) > 0 {
					s.logger.Info("export cleanup", zap.Int("jobs_removed", removed), zap.Int("files_removed", len(deleted)))
				}
			}
		}
	}()
}

// timetableDataset flattens a view into one row per occurrence.
func timetableDataset(view *models.TimetableView) export.Dataset {
	headers := []string{"Date", "Day", "Start", "Duration", "Course Code", "Section", "Room", "Teacher", "Students", "Capacity", "Over Capacity"}
	rows := make([]map[string]string, 0)
	for _, group := range view.Groups {
		for _, occ := range group.Occurrences {
			names := make([]string, 0, len(occ.Students))
			for _, student := range occ.Students {
				names = append(names, student.StudentName)
			}
			rows = append(rows, map[string]string{
				"Date":          models.DateKey(occ.Date),
				"Day":           occ.Weekday.String(),
				"Start":         occ.StartTime.String(),
				"Duration":      strconv.Itoa(occ.DurationMinutes) + "m",
				"Course Code":   occ.CourseCode,
				"Section":       occ.Section,
				"Room":          occ.Room,
				"Teacher":       occ.TeacherName,
				"Students":      strings.Join(names, "; "),
				"Capacity":      strconv.Itoa(occ.Capacity),
				"Over Capacity": strconv.FormatBool(occ.OverCapacity),
			})
		}
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
