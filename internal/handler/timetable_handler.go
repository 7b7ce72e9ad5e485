package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/msa-adp-api/internal/dto"
	"github.com/noah-isme/msa-adp-api/internal/models"
	appErrors "github.com/noah-isme/msa-adp-api/pkg/errors"
	"github.com/noah-isme/msa-adp-api/pkg/response"
)

const dateLayout = "2006-01-02"

type viewOrchestrator interface {
	Request(ctx context.Context, orgID string, granularity models.ViewGranularity, refDate time.Time) (*models.TimetableView, error)
	Refresh(ctx context.Context, orgID string, granularity models.ViewGranularity, refDate time.Time) (*models.TimetableView, error)
}

type balanceLister interface {
	Balances(ctx context.Context, orgID string, refDate time.Time, studentID string) ([]models.LessonBalance, error)
}

type holidayLister interface {
	Holidays(ctx context.Context, orgID string, from, to time.Time) ([]models.Holiday, error)
}

// TimetableHandler serves the reconciled timetable views and the
// read-model endpoints derived from them.
type TimetableHandler struct {
	views    viewOrchestrator
	balances balanceLister
	holidays holidayLister
}

// NewTimetableHandler constructs handler.
func NewTimetableHandler(views viewOrchestrator, balances balanceLister, holidays holidayLister) *TimetableHandler {
	return &TimetableHandler{views: views, balances: balances, holidays: holidays}
}

func parseDate(raw string) (time.Time, error) {
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}
	return date, nil
}

// View godoc
// @Summary Get timetable view
// @Tags Timetable
// @Produce json
// @Param X-Org-ID header string true "Organization"
// @Param granularity query string true "day, week or month"
// @Param date query string true "Reference date YYYY-MM-DD"
// @Success 200 {object} response.Envelope
// @Router /timetable [get]
func (h *TimetableHandler) View(c *gin.Context) {
	var query dto.TimetableQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query"))
		return
	}
	granularity := models.ViewGranularity(query.Granularity)
	if !granularity.Valid() {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "granularity must be day, week or month"))
		return
	}
	refDate, err := parseDate(query.Date)
	if err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.views.Request(c.Request.Context(), orgFromContext(c), granularity, refDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Refresh godoc
// @Summary Force rebuild of a timetable view
// @Tags Timetable
// @Accept json
// @Produce json
// @Param X-Org-ID header string true "Organization"
// @Param payload body dto.RefreshRequest true "View to rebuild"
// @Success 200 {object} response.Envelope
// @Router /timetable/refresh [post]
func (h *TimetableHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	granularity := models.ViewGranularity(req.Granularity)
	if !granularity.Valid() {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "granularity must be day, week or month"))
		return
	}
	refDate, err := parseDate(req.Date)
	if err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.views.Refresh(c.Request.Context(), orgFromContext(c), granularity, refDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Balances godoc
// @Summary Lesson balances for regular enrollments
// @Tags Timetable
// @Produce json
// @Param X-Org-ID header string true "Organization"
// @Param date query string true "Reference date YYYY-MM-DD"
// @Param studentId query string false "Restrict to one student"
// @Success 200 {object} response.Envelope
// @Router /students/balances [get]
func (h *TimetableHandler) Balances(c *gin.Context) {
	var query dto.BalancesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query"))
		return
	}
	refDate, err := parseDate(query.Date)
	if err != nil {
		response.Error(c, err)
		return
	}

	balances, err := h.balances.Balances(c.Request.Context(), orgFromContext(c), refDate, query.StudentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, balances, nil)
}

// Holidays godoc
// @Summary Holidays in a date range
// @Tags Timetable
// @Produce json
// @Param X-Org-ID header string true "Organization"
// @Param from query string true "Range start YYYY-MM-DD"
// @Param to query string true "Range end YYYY-MM-DD"
// @Success 200 {object} response.Envelope
// @Router /holidays [get]
func (h *TimetableHandler) Holidays(c *gin.Context) {
	var query dto.HolidaysQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query"))
		return
	}
	from, err := parseDate(query.From)
	if err != nil {
		response.Error(c, err)
		return
	}
	to, err := parseDate(query.To)
	if err != nil {
		response.Error(c, err)
		return
	}
	if to.Before(from) {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "to must not be before from"))
		return
	}

	holidays, err := h.holidays.Holidays(c.Request.Context(), orgFromContext(c), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, holidays, nil)
}
