package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jobvault/internal/service"
)

// JobHandler serves the job application CRUD and the pipeline summary.
type JobHandler struct {
	jobs  *service.JobService
	debug bool
}

// NewJobHandler builds the job handler.
func NewJobHandler(db *gorm.DB, debug bool) *JobHandler {
	return &JobHandler{jobs: service.NewJobService(db), debug: debug}
}

func idParam(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}

func (h *JobHandler) List(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	jobs, err := h.jobs.List(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) Get(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	job, err := h.jobs.Get(c.Request.Context(), userID, id)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Create(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	var in service.JobInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}
	job, err := h.jobs.Create(c.Request.Context(), userID, in)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) Update(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in service.JobInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}
	job, err := h.jobs.Update(c.Request.Context(), userID, id, in)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.jobs.Delete(c.Request.Context(), userID, id); err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *JobHandler) Pipeline(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	summary, err := h.jobs.Pipeline(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
