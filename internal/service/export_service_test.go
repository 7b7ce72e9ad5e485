package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/msa-adp-api/internal/dto"
	"github.com/noah-isme/msa-adp-api/internal/models"
	appErrors "github.com/noah-isme/msa-adp-api/pkg/errors"
	"github.com/noah-isme/msa-adp-api/pkg/jobs"
	"github.com/noah-isme/msa-adp-api/pkg/storage"
)

type mockExportViews struct{}

func (m *mockExportViews) Build(ctx context.Context, orgID string, granularity models.ViewGranularity, refDate time.Time) (*models.TimetableView, error) {
	occ := models.LessonOccurrence{
		SlotID:          "slot-1",
		Date:            refDate,
		Weekday:         models.WeekdayOf(refDate),
		StartTime:       15 * 60,
		DurationMinutes: 45,
		Capacity:        6,
		CourseCode:      "PIANO-01",
		TeacherName:     "Mr Goh",
		Students: []models.OccurrenceStudent{
			{StudentName: "Mia Tan", Origin: models.OriginRegular},
		},
	}
	return &models.TimetableView{
		OrgID:       orgID,
		Granularity: granularity,
		RefDate:     refDate,
		Groups: []models.ViewGroup{
			{Weekday: occ.Weekday, StartTime: occ.StartTime, CourseCode: occ.CourseCode, Occurrences: []models.LessonOccurrence{occ}},
		},
	}, nil
}

func newExportFixture(t *testing.T) (*ExportService, *jobs.Queue) {
	t.Helper()
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)
	queue := jobs.NewQueue("exports", jobs.QueueConfig{Workers: 1})
	svc := NewExportService(&mockExportViews{}, queue, files, signer, nil, nil, "/api/v1", time.Hour, time.Hour)
	return svc, queue
}

func TestExportServiceEndToEndCSV(t *testing.T) {
	svc, queue := newExportFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	queue.Start(ctx)
	defer queue.Stop()

	resp, err := svc.Submit(ctx, "org-1", dto.ExportRequest{
		Granularity: "week",
		Date:        "2024-03-11",
		Format:      "csv",
	})
	require.NoError(t, err)
	assert.Equal(t, ExportStatusQueued, resp.Status)

	waitFor(t, func() bool {
		status, err := svc.Status("org-1", resp.ID)
		return err == nil && status.Status == ExportStatusCompleted
	})

	status, err := svc.Status("org-1", resp.ID)
	require.NoError(t, err)
	require.NotNil(t, status.ResultURL)
	assert.Contains(t, *status.ResultURL, "/api/v1/exports/download/")

	job, ok := svc.store.get(resp.ID)
	require.True(t, ok)
	file, name, err := svc.ResolveDownload(job.Token)
	require.NoError(t, err)
	defer file.Close()
	assert.Contains(t, name, "org-1-week-2024-03-11.csv")
}

func TestExportServiceStatusScopedToOwningOrg(t *testing.T) {
	svc, queue := newExportFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	queue.Start(ctx)
	defer queue.Stop()

	resp, err := svc.Submit(ctx, "org-1", dto.ExportRequest{
		Granularity: "week",
		Date:        "2024-03-11",
		Format:      "csv",
	})
	require.NoError(t, err)

	waitFor(t, func() bool {
		status, err := svc.Status("org-1", resp.ID)
		return err == nil && status.Status == ExportStatusCompleted
	})

	// Knowing the job id is not enough; another org gets the same answer
	// as for an id that never existed.
	_, err = svc.Status("org-2", resp.ID)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)

	status, err := svc.Status("org-1", resp.ID)
	require.NoError(t, err)
	require.NotNil(t, status.ResultURL)
}

func TestExportServiceRejectsBadRequests(t *testing.T) {
	svc, queue := newExportFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	queue.Start(ctx)
	defer queue.Stop()

	_, err := svc.Submit(ctx, "org-1", dto.ExportRequest{Granularity: "year", Date: "2024-03-11", Format: "csv"})
	require.Error(t, err)

	_, err = svc.Submit(ctx, "org-1", dto.ExportRequest{Granularity: "week", Date: "11/03/2024", Format: "csv"})
	require.Error(t, err)
}

func TestExportServiceStatusUnknownJob(t *testing.T) {
	svc, _ := newExportFixture(t)
	_, err := svc.Status("org-1", "missing")
	require.Error(t, err)
}

func TestTimetableDatasetFlattensOccurrences(t *testing.T) {
	views := &mockExportViews{}
	view, err := views.Build(context.Background(), "org-1", models.GranularityDay, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	dataset := timetableDataset(view)
	require.Len(t, dataset.Rows, 1)
	row := dataset.Rows[0]
	assert.Equal(t, "2024-03-11", row["Date"])
	assert.Equal(t, "Monday", row["Day"])
	assert.Equal(t, "15:00", row["Start"])
	assert.Equal(t, "PIANO-01", row["Course Code"])
	assert.Equal(t, "Mia Tan", row["Students"])
	assert.Equal(t, "false", row["Over Capacity"])
}

func TestExportStoreExpiry(t *testing.T) {
	store := newExportStore(10 * time.Millisecond)
	store.put(&ExportJob{ID: "job-1", Status: ExportStatusQueued})

	_, ok := store.get("job-1")
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)
	_, ok = store.get("job-1")
	assert.False(t, ok)
	assert.Zero(t, store.purgeExpired())
}
