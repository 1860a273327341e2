package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jobvault/internal/service"
)

// ResumeHandler serves resume CRUD, section management, the live preview, and
// the sample seed.
type ResumeHandler struct {
	resumes *service.ResumeService
	debug   bool
}

// NewResumeHandler builds the resume handler.
func NewResumeHandler(db *gorm.DB, debug bool) *ResumeHandler {
	return &ResumeHandler{resumes: service.NewResumeService(db), debug: debug}
}

func (h *ResumeHandler) List(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	rows, err := h.resumes.List(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *ResumeHandler) Get(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	composite, err := h.resumes.Get(c.Request.Context(), userID, id)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusOK, composite)
}

func (h *ResumeHandler) Create(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	var in service.ResumeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}
	row, err := h.resumes.Create(c.Request.Context(), userID, in)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (h *ResumeHandler) Update(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in service.ResumeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}
	row, err := h.resumes.Update(c.Request.Context(), userID, id, in)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *ResumeHandler) Delete(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.resumes.Delete(c.Request.Context(), userID, id); err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Preview returns the layout description the client renders on screen. The
// export path feeds the identical structure into the HTML template.
func (h *ResumeHandler) Preview(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	layout, err := h.resumes.Layout(c.Request.Context(), userID, id)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusOK, layout)
}

func (h *ResumeHandler) CreateSection(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in service.SectionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}
	row, err := h.resumes.CreateSection(c.Request.Context(), userID, id, in)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (h *ResumeHandler) UpdateSection(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in service.SectionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}
	row, err := h.resumes.UpdateSection(c.Request.Context(), userID, id, in)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *ResumeHandler) DeleteSection(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.resumes.DeleteSection(c.Request.Context(), userID, id); err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type reorderRequest struct {
	From int `json:"from" binding:"gte=0"`
	To   int `json:"to" binding:"gte=0"`
}

// ReorderSections moves one section and returns the full re-indexed list.
func (h *ResumeHandler) ReorderSections(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	sections, err := h.resumes.ReorderSections(c.Request.Context(), userID, id, req.From, req.To)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusOK, sections)
}

// Seed creates the fixed sample resume for the current user.
func (h *ResumeHandler) Seed(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	composite, err := h.resumes.Seed(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusCreated, composite)
}
