package routes

import (
	"errors"
	"log"

	"hungerhub/models"
	"hungerhub/repository"

	"github.com/gofiber/fiber/v2"
)

const sessionUserKey = "user_id"

// requireLogin guards the admin page. Unauthenticated visitors are sent
// to the login endpoint like the original site did.
func (h *Handler) requireLogin(c *fiber.Ctx) error {
	sess, err := h.Sessions.Get(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Session error",
		})
	}
	if sess.Get(sessionUserKey) == nil {
		return c.Redirect("/auth/login", fiber.StatusFound)
	}
	return c.Next()
}

func (h *Handler) adminPage(c *fiber.Ctx) error {
	return c.SendFile("./public/admin.html")
}

// POST /auth/register
func (h *Handler) register(c *fiber.Ctx) error {
	req := new(models.RegisterRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	user, err := h.Users.Register(*req)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) || errors.Is(err, repository.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		log.Println("POST /auth/register error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server error",
		})
	}

	if err := h.storeSession(c, user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Session error",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registered",
		"user":    user,
	})
}

// POST /auth/login
func (h *Handler) login(c *fiber.Ctx) error {
	req := new(models.LoginRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email and password are required",
		})
	}

	user, err := h.Users.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid credentials",
			})
		}
		log.Println("POST /auth/login error:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server error",
		})
	}

	if err := h.storeSession(c, user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Session error",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    user,
	})
}

// GET /auth/logout
func (h *Handler) logout(c *fiber.Ctx) error {
	sess, err := h.Sessions.Get(c)
	if err == nil {
		if err := sess.Destroy(); err != nil {
			log.Println("Session destroy error:", err)
		}
	}
	return c.Redirect("/", fiber.StatusFound)
}

func (h *Handler) storeSession(c *fiber.Ctx, user *models.User) error {
	sess, err := h.Sessions.Get(c)
	if err != nil {
		return err
	}
	sess.Set(sessionUserKey, user.ID)
	return sess.Save()
}
