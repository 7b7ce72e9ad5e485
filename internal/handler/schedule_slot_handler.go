package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/msa-adp-api/internal/dto"
	"github.com/noah-isme/msa-adp-api/internal/models"
	"github.com/noah-isme/msa-adp-api/internal/service"
	appErrors "github.com/noah-isme/msa-adp-api/pkg/errors"
	"github.com/noah-isme/msa-adp-api/pkg/response"
)

// ScheduleSlotHandler manages recurring slot endpoints.
type ScheduleSlotHandler struct {
	service *service.CatalogService
}

// NewScheduleSlotHandler constructs handler.
func NewScheduleSlotHandler(svc *service.CatalogService) *ScheduleSlotHandler {
	return &ScheduleSlotHandler{service: svc}
}

// List godoc
// @Summary List schedule slots
// @Tags Catalog
// @Produce json
// @Param X-Org-ID header string true "Organization"
// @Param weekday query int false "Weekday 0=Sunday..6=Saturday"
// @Param courseCodeId query string false "Filter by course code"
// @Param active query bool false "Only active slots"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /catalog/slots [get]
func (h *ScheduleSlotHandler) List(c *gin.Context) {
	filter := models.ScheduleSlotFilter{OrgID: orgFromContext(c)}
	if raw := c.Query("weekday"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || !models.Weekday(value).Valid() {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "weekday must be between 0 and 6"))
			return
		}
		weekday := models.Weekday(value)
		filter.Weekday = &weekday
	}
	filter.CourseCodeID = c.Query("courseCodeId")
	filter.ActiveOnly = c.Query("active") == "true"
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = limit
	}

	items, pagination, err := h.service.ListScheduleSlots(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get godoc
// @Summary Get schedule slot
// @Tags Catalog
// @Produce json
// @Param X-Org-ID header string true "Organization"
// @Param id path string true "Slot ID"
// @Success 200 {object} response.Envelope
// @Router /catalog/slots/{id} [get]
func (h *ScheduleSlotHandler) Get(c *gin.Context) {
	item, err := h.service.GetScheduleSlot(c.Request.Context(), orgFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create godoc
// @Summary Create schedule slot
// @Tags Catalog
// @Accept json
// @Produce json
// @Param X-Org-ID header string true "Organization"
// @Param payload body dto.CreateScheduleSlotRequest true "Slot"
// @Success 201 {object} response.Envelope
// @Failure 422 {object} response.Envelope "Placement conflicts"
// @Router /catalog/slots [post]
func (h *ScheduleSlotHandler) Create(c *gin.Context) {
	var req dto.CreateScheduleSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	item, err := h.service.CreateScheduleSlot(c.Request.Context(), orgFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update schedule slot
// @Tags Catalog
// @Accept json
// @Produce json
// @Param X-Org-ID header string true "Organization"
// @Param id path string true "Slot ID"
// @Param payload body dto.UpdateScheduleSlotRequest true "Changes"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope "Placement conflicts"
// @Router /catalog/slots/{id} [put]
func (h *ScheduleSlotHandler) Update(c *gin.Context) {
	var req dto.UpdateScheduleSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	item, err := h.service.UpdateScheduleSlot(c.Request.Context(), orgFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Toggle godoc
// @Summary Toggle schedule slot active flag
// @Tags Catalog
// @Accept json
// @Produce json
// @Param X-Org-ID header string true "Organization"
// @Param id path string true "Slot ID"
// @Param payload body dto.ToggleActiveRequest true "Active flag"
// @Success 204 "No Content"
// @Router /catalog/slots/{id}/active [patch]
func (h *ScheduleSlotHandler) Toggle(c *gin.Context) {
	var req dto.ToggleActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	if err := h.service.ToggleScheduleSlotActive(c.Request.Context(), orgFromContext(c), c.Param("id"), req.Active); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Delete godoc
// @Summary Delete schedule slot
// @Tags Catalog
// @Param X-Org-ID header string true "Organization"
// @Param id path string true "Slot ID"
// @Success 204 "No Content"
// @Router /catalog/slots/{id} [delete]
func (h *ScheduleSlotHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteScheduleSlot(c.Request.Context(), orgFromContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Options godoc
// @Summary Catalog dropdown options
// @Tags Catalog
// @Produce json
// @Param X-Org-ID header string true "Organization"
// @Success 200 {object} response.Envelope
// @Router /catalog/options [get]
func (h *ScheduleSlotHandler) Options(c *gin.Context) {
	options, err := h.service.Options(c.Request.Context(), orgFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, options, nil)
}
