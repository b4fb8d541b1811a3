package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campusforge/campusforge-backend/internal/requestdata"
	"github.com/campusforge/campusforge-backend/internal/services"
	"github.com/campusforge/campusforge-backend/internal/types"
)

type ProjectHandler struct {
	projectService services.ProjectService
}

func NewProjectHandler(projectService services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (ph *ProjectHandler) Create(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	var project types.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	// Ownership always comes from the token, never the body.
	project.OwnerType = rd.Role
	project.OwnerID = rd.SubjectID
	saved, err := ph.projectService.Create(c.Request.Context(), &project)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, saved)
}

func (ph *ProjectHandler) Update(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}
	existing, err := ph.projectService.Get(c.Request.Context(), projectID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if !ownsProject(c, existing) {
		return
	}
	var project types.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	project.ProjectID = projectID
	project.OwnerType = existing.OwnerType
	project.OwnerID = existing.OwnerID
	saved, err := ph.projectService.Update(c.Request.Context(), &project)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, saved)
}

func (ph *ProjectHandler) Delete(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}
	existing, err := ph.projectService.Get(c.Request.Context(), projectID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if !ownsProject(c, existing) {
		return
	}
	if err := ph.projectService.Delete(c.Request.Context(), projectID); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "true"})
}

func (ph *ProjectHandler) Get(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}
	project, err := ph.projectService.Get(c.Request.Context(), projectID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, project)
}

func (ph *ProjectHandler) ListMine(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	projects, err := ph.projectService.ListByOwner(c.Request.Context(), rd.Role, rd.SubjectID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, projects)
}

func (ph *ProjectHandler) ListOpenings(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	currentUSN := ""
	if rd.Role == types.EntityStudent {
		currentUSN = rd.SubjectID
	}
	openings, err := ph.projectService.ListOpenings(c.Request.Context(), currentUSN)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, openings)
}

func (ph *ProjectHandler) SetActive(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}
	existing, err := ph.projectService.Get(c.Request.Context(), projectID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	if !ownsProject(c, existing) {
		return
	}
	var req struct {
		Active bool `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := ph.projectService.SetActive(c.Request.Context(), projectID, req.Active); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "true"})
}

func ownsProject(c *gin.Context, project *types.Project) bool {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.Role != project.OwnerType || rd.SubjectID != project.OwnerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return false
	}
	return true
}
