package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusforge/campusforge-backend/internal/requestdata"
	"github.com/campusforge/campusforge-backend/internal/services"
	"github.com/campusforge/campusforge-backend/internal/types"
)

type TeacherHandler struct {
	teacherService services.TeacherService
}

func NewTeacherHandler(teacherService services.TeacherService) *TeacherHandler {
	return &TeacherHandler{teacherService: teacherService}
}

func (th *TeacherHandler) UpsertProfile(c *gin.Context) {
	var teacher types.Teacher
	if err := c.ShouldBindJSON(&teacher); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if teacher.FacultyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "faculty_id required"})
		return
	}
	saved, err := th.teacherService.UpsertProfile(c.Request.Context(), &teacher)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, saved)
}

func (th *TeacherHandler) GetProfile(c *gin.Context) {
	facultyID := c.Param("facultyId")
	teacher, err := th.teacherService.GetProfile(c.Request.Context(), facultyID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, teacher)
}

func (th *TeacherHandler) SetVisibility(c *gin.Context) {
	facultyID := c.Param("facultyId")
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.Role != types.EntityTeacher || rd.SubjectID != facultyID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	var req struct {
		Visible bool `json:"visible"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := th.teacherService.SetVisibility(c.Request.Context(), facultyID, req.Visible); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "true"})
}
