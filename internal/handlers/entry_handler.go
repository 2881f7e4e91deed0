package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"timetracker/internal/forms"
	"timetracker/internal/metrics"
	"timetracker/internal/middleware"
	"timetracker/internal/services"
)

// EntryHandler serves the entry list, creation form and export. Entries
// have no update view.
type EntryHandler struct {
	service *services.EntryService
	export  *services.ExportService
	metrics *metrics.Collector
}

func NewEntryHandler(service *services.EntryService, export *services.ExportService, m *metrics.Collector) *EntryHandler {
	return &EntryHandler{service: service, export: export, metrics: m}
}

// ListEntries returns the current user's entries
// @Summary List my entries
// @Description Entries authored by the current user, plus the creation form
// @Tags entries
// @Produce json
// @Success 200 {object} map[string]interface{} "entries and form"
// @Router /entries/ [get]
func (h *EntryHandler) ListEntries(c *fiber.Ctx) error {
	entries, err := h.service.ListEntries(c.UserContext(), middleware.CurrentUser(c).ID)
	if err != nil {
		return internalError(c, "Failed to list entries", err)
	}
	return c.JSON(fiber.Map{
		"entries": entries,
		"form":    forms.EntryForm{},
	})
}

// CreateEntry stores a new entry authored by the current user
// @Summary Create an entry
// @Tags entries
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param project formData int true "Project ID"
// @Param description formData string true "What was done"
// @Param start formData string false "Start time, defaults to now"
// @Param stop formData string false "Stop time"
// @Success 302 "Redirect to the entry list"
// @Failure 400 {object} map[string]interface{} "Invalid form"
// @Router /entries/ [post]
func (h *EntryHandler) CreateEntry(c *fiber.Ctx) error {
	var form forms.EntryForm
	if err := c.BodyParser(&form); err != nil {
		return badRequest(c, err)
	}
	user := middleware.CurrentUser(c)
	entry, err := h.service.CreateEntry(c.UserContext(), user.ID, form)
	if err != nil {
		return respondError(c, h.metrics, "entry", form, err)
	}
	h.metrics.RecordCreated("entry")
	log.Printf("Created entry: ID=%d, Project=%d, Finished=%t, Author=%s", entry.ID, entry.ProjectID, entry.IsFinished(), user.Username)
	return c.Redirect(EntryListPath, fiber.StatusFound)
}

// ExportEntries downloads the current user's entries as CSV
// @Summary Export my entries
// @Tags entries
// @Produce text/csv,application/gzip
// @Param compress query string false "Set to gz for a gzip-compressed file"
// @Success 200 {file} binary "CSV export"
// @Router /entries/export/ [get]
func (h *EntryHandler) ExportEntries(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	compress := c.Query("compress") == "gz"

	export, err := h.export.ExportEntries(c.UserContext(), user.ID, compress)
	if err != nil {
		return internalError(c, "Failed to export entries", err)
	}
	log.Printf("Exported entries: Author=%s, File=%s, Size=%d bytes", user.Username, export.Filename, len(export.Data))

	c.Set(fiber.HeaderContentType, export.ContentType)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename=\""+export.Filename+"\"")
	return c.Status(fiber.StatusOK).Send(export.Data)
}
