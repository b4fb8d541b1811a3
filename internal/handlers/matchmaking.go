package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusforge/campusforge-backend/internal/services"
	"github.com/campusforge/campusforge-backend/internal/types"
)

type MatchmakingHandler struct {
	matchmakingService services.MatchmakingService
}

func NewMatchmakingHandler(matchmakingService services.MatchmakingService) *MatchmakingHandler {
	return &MatchmakingHandler{matchmakingService: matchmakingService}
}

func (mh *MatchmakingHandler) MatchStudents(c *gin.Context) {
	usn := c.Param("usn")
	results, err := mh.matchmakingService.MatchStudents(c.Request.Context(), usn)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, results)
}

func (mh *MatchmakingHandler) MatchTeachersForStudent(c *gin.Context) {
	usn := c.Param("usn")
	results, err := mh.matchmakingService.MatchTeachersForStudent(c.Request.Context(), usn)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, results)
}

func (mh *MatchmakingHandler) MatchStudentsForTeacher(c *gin.Context) {
	facultyID := c.Param("facultyId")
	results, err := mh.matchmakingService.MatchStudentsForTeacher(c.Request.Context(), facultyID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, results)
}

func (mh *MatchmakingHandler) MatchProjects(c *gin.Context) {
	profileType := c.Param("type")
	if profileType != types.EntityStudent && profileType != types.EntityTeacher {
		c.JSON(http.StatusBadRequest, gin.H{"error": "profile type must be student or teacher"})
		return
	}
	results, err := mh.matchmakingService.MatchProjects(c.Request.Context(), profileType, c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, results)
}

func (mh *MatchmakingHandler) ListMatches(c *gin.Context) {
	sourceType := c.Param("type")
	if sourceType != types.EntityStudent && sourceType != types.EntityTeacher {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source type must be student or teacher"})
		return
	}
	matches, err := mh.matchmakingService.ListMatches(c.Request.Context(), sourceType, c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, matches)
}
