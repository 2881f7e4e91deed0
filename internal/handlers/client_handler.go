package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"timetracker/internal/forms"
	"timetracker/internal/metrics"
	"timetracker/internal/middleware"
	"timetracker/internal/services"
)

// ClientHandler serves the client list, creation form and update form.
type ClientHandler struct {
	service *services.ClientService
	metrics *metrics.Collector
}

func NewClientHandler(service *services.ClientService, m *metrics.Collector) *ClientHandler {
	return &ClientHandler{service: service, metrics: m}
}

// ListClients returns every client and an empty creation form
// @Summary List clients
// @Description All clients, whoever created them, plus the creation form
// @Tags clients
// @Produce json
// @Success 200 {object} map[string]interface{} "clients and form"
// @Failure 302 "Redirect to login"
// @Router /clients/ [get]
func (h *ClientHandler) ListClients(c *fiber.Ctx) error {
	clients, err := h.service.ListClients(c.UserContext())
	if err != nil {
		return internalError(c, "Failed to list clients", err)
	}
	return c.JSON(fiber.Map{
		"clients": clients,
		"form":    forms.ClientForm{},
	})
}

// CreateClient stores a new client authored by the current user
// @Summary Create a client
// @Tags clients
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param name formData string true "Client name"
// @Success 302 "Redirect to the client list"
// @Failure 400 {object} map[string]interface{} "Invalid form"
// @Router /clients/ [post]
func (h *ClientHandler) CreateClient(c *fiber.Ctx) error {
	var form forms.ClientForm
	if err := c.BodyParser(&form); err != nil {
		return badRequest(c, err)
	}
	user := middleware.CurrentUser(c)
	client, err := h.service.CreateClient(c.UserContext(), user.ID, form)
	if err != nil {
		return respondError(c, h.metrics, "client", form, err)
	}
	h.metrics.RecordCreated("client")
	log.Printf("Created client: ID=%d, Name=%s, Author=%s", client.ID, client.Name, user.Username)
	return c.Redirect(ClientListPath, fiber.StatusFound)
}

// GetClient returns a client owned by the current user with a pre-filled form
// @Summary Get a client for editing
// @Tags clients
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} map[string]interface{} "client and form"
// @Failure 404 {object} map[string]interface{} "Not found or not owned"
// @Router /clients/{id}/ [get]
func (h *ClientHandler) GetClient(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}
	client, err := h.service.GetAuthoredClient(c.UserContext(), id, middleware.CurrentUser(c).ID)
	if err != nil {
		return respondError(c, h.metrics, "client", nil, err)
	}
	return c.JSON(fiber.Map{
		"client": client,
		"form":   forms.ClientForm{Name: client.Name},
	})
}

// UpdateClient applies the form to a client owned by the current user
// @Summary Update a client
// @Tags clients
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param id path int true "Client ID"
// @Param name formData string true "Client name"
// @Success 302 "Redirect to the client list"
// @Failure 400 {object} map[string]interface{} "Invalid form"
// @Failure 404 {object} map[string]interface{} "Not found or not owned"
// @Router /clients/{id}/ [post]
func (h *ClientHandler) UpdateClient(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c)
	}
	client, err := h.service.GetAuthoredClient(c.UserContext(), id, middleware.CurrentUser(c).ID)
	if err != nil {
		return respondError(c, h.metrics, "client", nil, err)
	}
	var form forms.ClientForm
	if err := c.BodyParser(&form); err != nil {
		return badRequest(c, err)
	}
	if err := h.service.UpdateClient(c.UserContext(), client, form); err != nil {
		return respondError(c, h.metrics, "client", form, err)
	}
	h.metrics.RecordUpdated("client")
	log.Printf("Updated client: ID=%d, Name=%s", client.ID, client.Name)
	return c.Redirect(ClientListPath, fiber.StatusFound)
}
