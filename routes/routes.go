package routes

import (
	"errors"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"hungerhub/catalog"
	"hungerhub/models"
	"hungerhub/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

// Handler bundles the dependencies the route handlers need. Everything is
// injected; there are no package-level connections.
type Handler struct {
	Service  *catalog.Service
	Users    *repository.UserRepository
	Feedback *repository.FeedbackRepository
	Sessions *session.Store
	Hub      *Hub
}

func SetupRoutes(app *fiber.App, h *Handler) {
	app.Get("/ping", ping)
	app.Get("/ws", h.Hub.handler())
	app.Post("/upload", h.uploadImage)

	app.Get("/admin", h.requireLogin, h.adminPage)

	auth := app.Group("/auth")
	auth.Post("/register", h.register)
	auth.Post("/login", h.login)
	auth.Get("/logout", h.logout)

	api := app.Group("/api")
	api.Get("/menu", h.getMenu)
	api.Post("/menu", h.createMenuItem)
	api.Put("/menu/:id", h.updateMenuItem)
	api.Delete("/menu/:id", h.deleteMenuItem)
	api.Get("/seed-menu", h.seedMenu)
	api.Post("/feedback", h.createFeedback)
}

func ping(c *fiber.Ctx) error {
	return c.SendString("pong")
}

// statusForError maps the service error kinds onto response codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, repository.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, catalog.ErrFallbackMissing):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// GET /api/menu — never fails; an empty array is a valid catalog.
func (h *Handler) getMenu(c *fiber.Ctx) error {
	items, source := h.Service.Catalog()
	c.Set("X-Menu-Source", source.String())
	return c.JSON(items)
}

// POST /api/menu
func (h *Handler) createMenuItem(c *fiber.Ctx) error {
	input := new(models.MenuItemInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	// Reject blank names before the service runs; the repository checks
	// again.
	if strings.TrimSpace(input.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name is required",
		})
	}

	item, err := h.Service.CreateItem(*input)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	log.Println("[API] created menu item:", item.ID)
	h.Hub.Publish(ChangeEvent{Event: "created", ID: item.ID})
	return c.Status(fiber.StatusCreated).JSON(item)
}

// PUT /api/menu/:id
func (h *Handler) updateMenuItem(c *fiber.Ctx) error {
	id, ok := parseID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Menu item not found",
		})
	}

	update := new(models.MenuItemUpdate)
	if err := c.BodyParser(update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	log.Println("[API] PUT /api/menu id =", id)
	item, err := h.Service.UpdateItem(id, *update)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	h.Hub.Publish(ChangeEvent{Event: "updated", ID: item.ID})
	return c.JSON(item)
}

// DELETE /api/menu/:id
func (h *Handler) deleteMenuItem(c *fiber.Ctx) error {
	id, ok := parseID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Menu item not found",
		})
	}

	log.Println("[API] DELETE /api/menu id =", id)
	if err := h.Service.DeleteItem(id); err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	h.Hub.Publish(ChangeEvent{Event: "deleted", ID: id})
	return c.JSON(fiber.Map{
		"success": true,
	})
}

// GET /api/seed-menu — one-time repopulation of the repository from the
// fallback document.
func (h *Handler) seedMenu(c *fiber.Ctx) error {
	log.Println("[API] GET /api/seed-menu")
	n, err := h.Service.SeedFromFallback()
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	h.Hub.Publish(ChangeEvent{Event: "seeded", Count: n})
	return c.JSON(fiber.Map{
		"inserted": n,
	})
}

// POST /api/feedback
func (h *Handler) createFeedback(c *fiber.Ctx) error {
	fb := new(models.Feedback)
	if err := c.BodyParser(fb); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	created, err := h.Feedback.Create(*fb)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// Image upload handler
func (h *Handler) uploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to get uploaded file",
		})
	}

	// Generate unique filename
	ext := filepath.Ext(file.Filename)
	filename := uuid.New().String() + ext
	dest := "./uploads/" + filename

	if err := c.SaveFile(file, dest); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save file",
		})
	}

	// Return the path that can be stored on a menu item
	return c.JSON(fiber.Map{
		"filename": filename,
		"path":     "/uploads/" + filename,
	})
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
