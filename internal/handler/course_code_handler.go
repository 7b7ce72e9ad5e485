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

// CourseCodeHandler manages course code endpoints.
type CourseCodeHandler struct {
	service *service.CatalogService
}

// NewCourseCodeHandler constructs handler.
func NewCourseCodeHandler(svc *service.CatalogService) *CourseCodeHandler {
	return &CourseCodeHandler{service: svc}
}

// List godoc
// @Summary List course codes
// @Tags Catalog
// @Produce json
// @Param X-Org-ID header string true "Organization"
// @Param courseTypeId query string false "Filter by course type"
// @Param teacherId query string false "Filter by teacher"
// @Param active query bool false "Only active codes"
// @Param q query string false "Search code or name"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /catalog/course-codes [get]
func (h *CourseCodeHandler) List(c *gin.Context) {
	filter := models.CourseCodeFilter{OrgID: orgFromContext(c)}
	filter.CourseTypeID = c.Query("courseTypeId")
	filter.TeacherID = c.Query("teacherId")
	filter.ActiveOnly = c.Query("active") == "true"
	filter.Search = c.Query("q")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = limit
	}

	items, pagination, err := h.service.ListCourseCodes(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get godoc
// @Summary Get course code
// @Tags Catalog
// @Produce json
// @Param X-Org-ID header string true "Organization"
// @Param id path string true "Course code ID"
// @Success 200 {object} response.Envelope
// @Router /catalog/course-codes/{id} [get]
func (h *CourseCodeHandler) Get(c *gin.Context) {
	item, err := h.service.GetCourseCode(c.Request.Context(), orgFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create godoc
// @Summary Create course code
// @Tags Catalog
// @Accept json
// @Produce json
// @Param X-Org-ID header string true "Organization"
// @Param payload body dto.CreateCourseCodeRequest true "Course code"
// @Success 201 {object} response.Envelope
// @Router /catalog/course-codes [post]
func (h *CourseCodeHandler) Create(c *gin.Context) {
	var req dto.CreateCourseCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	item, err := h.service.CreateCourseCode(c.Request.Context(), orgFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update course code
// @Tags Catalog
// @Accept json
// @Produce json
// @Param X-Org-ID header string true "Organization"
// @Param id path string true "Course code ID"
// @Param payload body dto.UpdateCourseCodeRequest true "Changes"
// @Success 200 {object} response.Envelope
// @Router /catalog/course-codes/{id} [put]
func (h *CourseCodeHandler) Update(c *gin.Context) {
	var req dto.UpdateCourseCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	item, err := h.service.UpdateCourseCode(c.Request.Context(), orgFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Toggle godoc
// @Summary Toggle course code active flag
// @Tags Catalog
// @Accept json
// @Produce json
// @Param X-Org-ID header string true "Organization"
// @Param id path string true "Course code ID"
// @Param payload body dto.ToggleActiveRequest true "Active flag"
// @Success 204 "No Content"
// @Router /catalog/course-codes/{id}/active [patch]
func (h *CourseCodeHandler) Toggle(c *gin.Context) {
	var req dto.ToggleActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	if err := h.service.ToggleCourseCodeActive(c.Request.Context(), orgFromContext(c), c.Param("id"), req.Active); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
