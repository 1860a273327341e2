package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jobvault/internal/service"
)

// ProjectHandler serves the portfolio project CRUD.
type ProjectHandler struct {
	projects *service.ProjectService
	debug    bool
}

// NewProjectHandler builds the project handler.
func NewProjectHandler(db *gorm.DB, debug bool) *ProjectHandler {
	return &ProjectHandler{projects: service.NewProjectService(db), debug: debug}
}

func (h *ProjectHandler) List(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	rows, err := h.projects.List(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *ProjectHandler) Create(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	var in service.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}
	row, err := h.projects.Create(c.Request.Context(), userID, in)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in service.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}
	row, err := h.projects.Update(c.Request.Context(), userID, id, in)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.projects.Delete(c.Request.Context(), userID, id); err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.Status(http.StatusNoContent)
}
