package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"timetracker/internal/forms"
	"timetracker/internal/metrics"
	"timetracker/internal/middleware"
	"timetracker/internal/services"
)

const invalidLoginMessage = "Please enter a correct username and password."

// AuthHandler serves login and logout.
type AuthHandler struct {
	service *services.AuthService
	auth    *middleware.Auth
	metrics *metrics.Collector
}

func NewAuthHandler(service *services.AuthService, auth *middleware.Auth, m *metrics.Collector) *AuthHandler {
	return &AuthHandler{service: service, auth: auth, metrics: m}
}

// LoginForm returns the empty login form
// @Summary Login form
// @Tags auth
// @Produce json
// @Param next query string false "Where to go after logging in"
// @Success 200 {object} map[string]interface{} "form and next"
// @Router /auth/login/ [get]
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"form": forms.LoginForm{},
		"next": middleware.SafeNext(c.Query("next"), RootPath),
	})
}

// Login authenticates the user and starts a session
// @Summary Log in
// @Tags auth
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Param next query string false "Where to go after logging in"
// @Success 302 "Redirect to next"
// @Failure 400 {object} map[string]interface{} "Invalid credentials"
// @Router /auth/login/ [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var form forms.LoginForm
	if err := c.BodyParser(&form); err != nil {
		return badRequest(c, err)
	}
	next := middleware.SafeNext(c.Query("next", c.FormValue("next")), RootPath)
	// never echo the password back
	echo := forms.LoginForm{Username: form.Username}

	if errs := forms.Validate(&form); errs != nil {
		return respondError(c, h.metrics, "login", echo, errs)
	}
	user, err := h.service.Authenticate(c.UserContext(), form.Username, form.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		h.metrics.LoginAttempt(false)
		log.Printf("Failed login: Username=%s, IP=%s", form.Username, c.IP())
		errs := forms.Errors{}
		errs.Add(forms.NonFieldErrors, invalidLoginMessage)
		return respondError(c, h.metrics, "login", echo, errs)
	}
	if err != nil {
		return internalError(c, "Failed to log in", err)
	}
	if err := h.auth.Login(c, user); err != nil {
		return internalError(c, "Failed to log in", err)
	}
	h.metrics.LoginAttempt(true)
	log.Printf("User logged in: Username=%s, IP=%s", user.Username, c.IP())
	return c.Redirect(next, fiber.StatusFound)
}

// Logout ends the session and goes back to the root
// @Summary Log out
// @Tags auth
// @Success 302 "Redirect to /"
// @Router /auth/logout/ [get]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.auth.Logout(c); err != nil {
		return internalError(c, "Failed to log out", err)
	}
	return c.Redirect(RootPath, fiber.StatusFound)
}

// RootRedirect sends the root to the client list. The redirect is not
// permanent so the mapping can change later.
func RootRedirect(c *fiber.Ctx) error {
	return c.Redirect(ClientListPath, fiber.StatusFound)
}
