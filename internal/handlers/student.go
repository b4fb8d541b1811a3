package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusforge/campusforge-backend/internal/requestdata"
	"github.com/campusforge/campusforge-backend/internal/services"
	"github.com/campusforge/campusforge-backend/internal/types"
)

type StudentHandler struct {
	studentService services.StudentService
}

func NewStudentHandler(studentService services.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

func (sh *StudentHandler) UpsertProfile(c *gin.Context) {
	var student types.Student
	if err := c.ShouldBindJSON(&student); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if student.USN == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "usn required"})
		return
	}
	saved, err := sh.studentService.UpsertProfile(c.Request.Context(), &student)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, saved)
}

func (sh *StudentHandler) GetProfile(c *gin.Context) {
	usn := c.Param("usn")
	student, err := sh.studentService.GetProfile(c.Request.Context(), usn)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, student)
}

func (sh *StudentHandler) SetVisibility(c *gin.Context) {
	usn := c.Param("usn")
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.Role != types.EntityStudent || rd.SubjectID != usn {
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
	if err := sh.studentService.SetVisibility(c.Request.Context(), usn, req.Visible); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "true"})
}
