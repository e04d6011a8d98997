package http

import (
	"context"
	"net/mail"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spendwise-app/spendwise-backend/internal/audit"
	"github.com/spendwise-app/spendwise-backend/internal/auth"
	"github.com/spendwise-app/spendwise-backend/internal/domain"
	"github.com/spendwise-app/spendwise-backend/internal/user"
)

type AuthHandler struct {
	Users  user.Store
	Tokens *auth.Tokens
	Audit  *audit.Recorder
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Currency string `json:"currency"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userPayload is the wire shape of a user; the password hash never
// appears here.
type userPayload struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

type authResponse struct {
	User  userPayload `json:"user"`
	Token string      `json:"token"`
}

func toPayload(u *domain.User) userPayload {
	return userPayload{ID: u.ID, Email: u.Email, Name: u.Name, Currency: u.Currency}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var body signupRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid email address")
	}
	if len(body.Password) < auth.MinPasswordLen {
		return fiber.NewError(fiber.StatusBadRequest, "Password must be at least 7 characters")
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Name is required")
	}
	currency := strings.ToUpper(strings.TrimSpace(body.Currency))
	if currency == "" {
		currency = "USD"
	}

	hashed, err := auth.HashPassword(body.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "internal error")
	}

	ctx := reqContext(c)
	u, err := h.Users.Create(ctx, email, hashed, name, currency)
	if err != nil {
		if err == user.ErrEmailTaken {
			return fiber.NewError(fiber.StatusBadRequest, "Email already registered")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "could not create user")
	}

	token, err := h.Tokens.Issue(u.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create token")
	}

	h.Audit.Record(ctx, audit.Entry{
		UserID:     u.ID,
		Action:     "auth.signup",
		EntityType: "user",
		EntityID:   u.ID,
		IP:         c.IP(),
	})

	return c.Status(fiber.StatusCreated).JSON(authResponse{User: toPayload(u), Token: token})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body loginRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))
	ctx := reqContext(c)

	// Unknown email and wrong password return the same message so
	// accounts cannot be enumerated.
	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
	}
	if !auth.CheckPassword(u.PasswordHash, body.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
	}

	token, err := h.Tokens.Issue(u.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create token")
	}

	h.Audit.Record(ctx, audit.Entry{
		UserID:     u.ID,
		Action:     "auth.login",
		EntityType: "user",
		EntityID:   u.ID,
		IP:         c.IP(),
	})

	return c.JSON(authResponse{User: toPayload(u), Token: token})
}

// Me resolves the bearer token to its user row.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	u, err := h.Users.GetByID(reqContext(c), userID)
	if err != nil {
		if err == user.ErrNotFound {
			return fiber.NewError(fiber.StatusUnauthorized, "User from token not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Error fetching user")
	}
	return c.JSON(toPayload(u))
}

func reqContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
