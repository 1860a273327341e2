package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jobvault/internal/service"
)

// HistoryHandler serves the professional-history entities: experiences,
// education, skills, certifications, and achievements.
type HistoryHandler struct {
	history *service.HistoryService
	debug   bool
}

// NewHistoryHandler builds the history handler.
func NewHistoryHandler(db *gorm.DB, debug bool) *HistoryHandler {
	return &HistoryHandler{history: service.NewHistoryService(db), debug: debug}
}

func (h *HistoryHandler) ListExperiences(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	rows, err := h.history.ListExperiences(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *HistoryHandler) CreateExperience(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	var in service.ExperienceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}
	row, err := h.history.CreateExperience(c.Request.Context(), userID, in)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (h *HistoryHandler) UpdateExperience(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in service.ExperienceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}
	row, err := h.history.UpdateExperience(c.Request.Context(), userID, id, in)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *HistoryHandler) DeleteExperience(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.history.DeleteExperience(c.Request.Context(), userID, id); err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HistoryHandler) ListEducation(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	rows, err := h.history.ListEducation(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *HistoryHandler) CreateEducation(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	var in service.EducationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}
	row, err := h.history.CreateEducation(c.Request.Context(), userID, in)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (h *HistoryHandler) UpdateEducation(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in service.EducationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}
	row, err := h.history.UpdateEducation(c.Request.Context(), userID, id, in)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *HistoryHandler) DeleteEducation(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.history.DeleteEducation(c.Request.Context(), userID, id); err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HistoryHandler) ListSkills(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	rows, err := h.history.ListSkills(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *HistoryHandler) CreateSkill(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	var in service.SkillInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}
	row, err := h.history.CreateSkill(c.Request.Context(), userID, in)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (h *HistoryHandler) UpdateSkill(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in service.SkillInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}
	row, err := h.history.UpdateSkill(c.Request.Context(), userID, id, in)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *HistoryHandler) DeleteSkill(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.history.DeleteSkill(c.Request.Context(), userID, id); err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HistoryHandler) ListCertifications(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	rows, err := h.history.ListCertifications(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *HistoryHandler) CreateCertification(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	var in service.CertificationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}
	row, err := h.history.CreateCertification(c.Request.Context(), userID, in)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (h *HistoryHandler) UpdateCertification(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in service.CertificationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}
	row, err := h.history.UpdateCertification(c.Request.Context(), userID, id, in)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *HistoryHandler) DeleteCertification(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.history.DeleteCertification(c.Request.Context(), userID, id); err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HistoryHandler) ListAchievements(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	rows, err := h.history.ListAchievements(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *HistoryHandler) CreateAchievement(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	var in service.AchievementInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}
	row, err := h.history.CreateAchievement(c.Request.Context(), userID, in)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (h *HistoryHandler) UpdateAchievement(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in service.AchievementInput
	if err := c.ShouldBindJSON(&in); err != nil {
		BadRequest(c, err.Error())
		return
	}
	row, err := h.history.UpdateAchievement(c.Request.Context(), userID, id, in)
	if err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *HistoryHandler) DeleteAchievement(c *gin.Context) {
	userID, _ := userIDFromContext(c)
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.history.DeleteAchievement(c.Request.Context(), userID, id); err != nil {
		RespondError(c, h.debug, err)
		return
	}
	c.Status(http.StatusNoContent)
}
