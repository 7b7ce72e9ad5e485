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

// CourseTypeHandler manages course type endpoints.
type CourseTypeHandler struct {
	service *service.CatalogService
}

// NewCourseTypeHandler constructs handler.
func NewCourseTypeHandler(svc *service.CatalogService) *CourseTypeHandler {
	return &CourseTypeHandler{service: svc}
}

// List godoc
// @Summary List course types
// @Tags Catalog
// @Produce json
// @Param X-Org-ID header string true "Organization"
// @Param active query bool false "Only active types"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /catalog/course-types [get]
func (h *CourseTypeHandler) List(c *gin.Context) {
	filter := models.CourseTypeFilter{OrgID: orgFromContext(c)}
	filter.ActiveOnly = c.Query("active") == "true"
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = limit
	}

	items, pagination, err := h.service.ListCourseTypes(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get godoc
// @Summary Get course type
// @Tags Catalog
// @Produce json
// @Param X-Org-ID header string true "Organization"
// @Param id path string true "Course type ID"
// @Success 200 {object} response.Envelope
// @Router /catalog/course-types/{id} [get]
func (h *CourseTypeHandler) Get(c *gin.Context) {
	item, err := h.service.GetCourseType(c.Request.Context(), orgFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create godoc
// @Summary Create course type
// @Tags Catalog
// @Accept json
// @Produce json
// @Param X-Org-ID header string true "Organization"
// @Param payload body dto.CreateCourseTypeRequest true "Course type"
// @Success 201 {object} response.Envelope
// @Router /catalog/course-types [post]
func (h *CourseTypeHandler) Create(c *gin.Context) {
	var req dto.CreateCourseTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	item, err := h.service.CreateCourseType(c.Request.Context(), orgFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update course type
// @Tags Catalog
// @Accept json
// @Produce json
// @Param X-Org-ID header string true "Organization"
// @Param id path string true "Course type ID"
// @Param payload body dto.UpdateCourseTypeRequest true "Changes"
// @Success 200 {object} response.Envelope
// @Router /catalog/course-types/{id} [put]
func (h *CourseTypeHandler) Update(c *gin.Context) {
	var req dto.UpdateCourseTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	item, err := h.service.UpdateCourseType(c.Request.Context(), orgFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Toggle godoc
// @Summary Toggle course type active flag
// @Tags Catalog
// @Accept json
// @Produce json
// @Param X-Org-ID header string true "Organization"
// @Param id path string true "Course type ID"
// @Param payload body dto.ToggleActiveRequest true "Active flag"
// @Success 204 "No Content"
// @Router /catalog/course-types/{id}/active [patch]
func (h *CourseTypeHandler) Toggle(c *gin.Context) {
	var req dto.ToggleActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	if err := h.service.ToggleCourseTypeActive(c.Request.Context(), orgFromContext(c), c.Param("id"), req.Active); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
