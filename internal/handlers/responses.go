package handlers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"timetracker/internal/forms"
	"timetracker/internal/metrics"
	"timetracker/internal/services"
)

const (
	RootPath        = "/"
	ClientListPath  = "/clients/"
	ProjectListPath = "/projects/"
	EntryListPath   = "/entries/"

	InvalidFormError    = "Invalid form submission"
	InvalidRequestError = "Invalid request format"
	NotFoundError       = "Not found"
)

// parseID reads the numeric :id path parameter. Anything that is not a
// positive integer is reported as not found, like an unknown id.
func parseID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": true, "message": NotFoundError,
	})
}

func badRequest(c *fiber.Ctx, err error) error {
	log.Printf("Error parsing form data: Path=%s, Error=%v", c.Path(), err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   true,
		"message": InvalidRequestError,
		"details": err.Error(),
	})
}

// respondError turns a service error into a response. Form errors become a
// 400 carrying the submitted form and field messages; ErrNotFound a 404;
// anything else a 500.
func respondError(c *fiber.Ctx, m *metrics.Collector, formName string, form interface{}, err error) error {
	var errs forms.Errors
	if errors.As(err, &errs) {
		m.FormRejected(formName)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   true,
			"message": InvalidFormError,
			"errors":  errs,
			"form":    form,
		})
	}
	if errors.Is(err, services.ErrNotFound) {
		return notFound(c)
	}
	log.Printf("Error handling %s form: Path=%s, Error=%v", formName, c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": true, "message": err.Error(),
	})
}

func internalError(c *fiber.Ctx, msg string, err error) error {
	log.Printf("%s: Path=%s, Error=%v", msg, c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   true,
		"message": msg,
		"details": err.Error(),
	})
}
