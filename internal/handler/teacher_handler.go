package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/msa-adp-api/internal/models"
	"github.com/noah-isme/msa-adp-api/internal/service"
	"github.com/noah-isme/msa-adp-api/pkg/response"
)

// TeacherHandler serves the read-only teacher directory.
type TeacherHandler struct {
	service *service.TeacherService
}

// NewTeacherHandler constructs handler.
func NewTeacherHandler(svc *service.TeacherService) *TeacherHandler {
	return &TeacherHandler{service: svc}
}

// List godoc
// @Summary List teachers
// @Tags Teachers
// @Produce json
// @Param X-Org-ID header string true "Organization"
// @Param active query bool false "Only active teachers"
// @Param q query string false "Search name or instrument"
// @Success 200 {object} response.Envelope
// @Router /teachers [get]
func (h *TeacherHandler) List(c *gin.Context) {
	filter := models.TeacherFilter{
		OrgID:      orgFromContext(c),
		ActiveOnly: c.Query("active") == "true",
		Search:     c.Query("q"),
	}
	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}
