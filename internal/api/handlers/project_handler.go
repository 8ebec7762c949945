package handlers

import (
	"net/http"

	"github.com/Marga-Ghale/synergysphere-backend/internal/api/middleware"
	"github.com/Marga-Ghale/synergysphere-backend/internal/imagegen"
	"github.com/Marga-Ghale/synergysphere-backend/internal/models"
	"github.com/Marga-Ghale/synergysphere-backend/internal/repository"
	"github.com/Marga-Ghale/synergysphere-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ============================================
// Project Handler
// ============================================

type ProjectHandler struct {
	projectService service.ProjectService
}

func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// List - List projects, optionally filtered by name or id
// GET /api/projects?search=
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projectService.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]models.ProjectSummaryResponse, len(projects))
	for i, p := range projects {
		response[i] = toProjectSummaryResponse(p)
	}

	c.JSON(http.StatusOK, response)
}

// Get - Project with members and tasks
// GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	detail, err := h.projectService.GetDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProjectDetailResponse(detail))
}

// Create - Create a new project
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), service.CreateProjectInput{
		Name:           req.Name,
		Description:    req.Description,
		Tags:           req.Tags,
		Priority:       req.Priority,
		Deadline:       req.Deadline,
		ProjectManager: req.ProjectManager.Int64Ptr(),
		ImageURL:       req.Image,
		CreatedBy:      req.CreatedBy.Int64Ptr(),
	}, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.CreatedResponse{ID: project.ID, Message: "Project created successfully"})
}

// Update - Partial update of a project
// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	imageURL := req.ImageURL
	if req.Image != nil {
		imageURL = req.Image
	}

	err := h.projectService.Update(c.Request.Context(), id, repository.ProjectPatch{
		Name:           req.Name,
		Description:    req.Description,
		Tags:           req.Tags,
		Priority:       req.Priority,
		Deadline:       req.Deadline,
		ImageURL:       imageURL,
		ProjectManager: req.ProjectManager.Int64Ptr(),
		Status:         req.Status,
		Pinned:         req.Pinned,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Project updated successfully"})
}

// UpdateStatus - PATCH /api/projects/:id/status
func (h *ProjectHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateProjectStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.projectService.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Project status updated successfully"})
}

// Pin - PATCH /api/projects/:id/pin
func (h *ProjectHandler) Pin(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.PinProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.projectService.SetPinned(c.Request.Context(), id, *req.Pinned); err != nil {
		respondError(c, err)
		return
	}

	message := "Project unpinned successfully"
	if *req.Pinned {
		message = "Project pinned successfully"
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: message})
}

// Delete - DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Project deleted successfully"})
}

// Image - Placeholder cover
// GET /api/projects/:id/image
func (h *ProjectHandler) Image(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	svg, err := imagegen.ProjectCover(project.ID, project.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, imagegen.ContentType, svg)
}
