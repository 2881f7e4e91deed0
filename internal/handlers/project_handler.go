package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"timetracker/internal/forms"
	"timetracker/internal/metrics"
	"timetracker/internal/middleware"
	"timetracker/internal/services"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	metrics        *metrics.Collector
}

func NewProjectHandler(projectService *services.ProjectService, m *metrics.Collector) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		metrics:        m,
	}
}

// ListProjects returns all projects
// @Summary List projects
// @Description All projects, whoever created them, plus the creation form
// @Tags projects
// @Produce json
// @Success 200 {object} map[string]interface{} "projects and form"
// @Router /projects/ [get]
func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	projects, err := h.projectService.ListProjects(c.UserContext())
	if err != nil {
		return internalError(c, "Failed to list projects", err)
	}
	return c.JSON(fiber.Map{
		"projects": projects,
		"form":     forms.ProjectForm{},
	})
}

// CreateProject creates a new project
// @Summary Create a project
// @Tags projects
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param name formData string true "Project name"
// @Param client formData int false "Client ID"
// @Success 302 "Redirect to the project list"
// @Failure 400 {object} map[string]interface{} "Invalid form"
// @Router /projects/ [post]
func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	var form forms.ProjectForm
	if err := c.BodyParser(&form); err != nil {
		return badRequest(c, err)
	}
	user := middleware.CurrentUser(c)
	project, err := h.projectService.CreateProject(c.UserContext(), user.ID, form)
	if err != nil {
		return respondError(c, h.metrics, "project", form, err)
	}
	h.metrics.RecordCreated("project")
	log.Printf("Created project: ID=%d, Name=%s, Author=%s", project.ID, project.Name, user.Username)
	return c.Redirect(ProjectListPath, fiber.StatusFound)
}

// GetProject returns a project owned by the current user
// @Summary Get a project for editing
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} map[string]interface{} "project and form"
// @Failure 404 {object} map[string]interface{} "Not found or not owned"
// @Router /projects/{id}/ [get]
func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}
	project, err := h.projectService.GetAuthoredProject(c.UserContext(), id, middleware.CurrentUser(c).ID)
	if err != nil {
		return respondError(c, h.metrics, "project", nil, err)
	}
	form := forms.ProjectForm{Name: project.Name}
	if project.ClientID != nil {
		form.Client = forms.ChoiceOf(*project.ClientID)
	}
	return c.JSON(fiber.Map{
		"project": project,
		"form":    form,
	})
}

// UpdateProject updates a project
// @Summary Update a project
// @Tags projects
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param id path int true "Project ID"
// @Param name formData string true "Project name"
// @Param client formData int false "Client ID"
// @Success 302 "Redirect to the project list"
// @Failure 400 {object} map[string]interface{} "Invalid form"
// @Failure 404 {object} map[string]interface{} "Not found or not owned"
// @Router /projects/{id}/ [post]
func (h *ProjectHandler) UpdateProject(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}
	project, err := h.projectService.GetAuthoredProject(c.UserContext(), id, middleware.CurrentUser(c).ID)
	if err != nil {
		return respondError(c, h.metrics, "project", nil, err)
	}
	var form forms.ProjectForm
	if err := c.BodyParser(&form); err != nil {
		return badRequest(c, err)
	}
	if err := h.projectService.UpdateProject(c.UserContext(), project, form); err != nil {
		return respondError(c, h.metrics, "project", form, err)
	}
	h.metrics.RecordUpdated("project")
	log.Printf("Updated project: ID=%d, Name=%s", project.ID, project.Name)
	return c.Redirect(ProjectListPath, fiber.StatusFound)
}
