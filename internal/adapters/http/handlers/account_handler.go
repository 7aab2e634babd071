package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/prasad217/Electric-Billing-system/internal/adapters/http/middleware"
	"github.com/prasad217/Electric-Billing-system/internal/config"
	"github.com/prasad217/Electric-Billing-system/internal/core/services"
	"github.com/prasad217/Electric-Billing-system/internal/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AccountHandler handles registration and login endpoints
type AccountHandler struct {
	accountService *services.AccountService
	cfg            *config.Config
	validate       *validator.Validate
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService *services.AccountService, cfg *config.Config) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		cfg:            cfg,
		validate:       validator.New(),
	}
}

// RegisterUserRequest represents user registration request body
type RegisterUserRequest struct {
	Name                   string `json:"name" validate:"required"`
	Address                string `json:"address" validate:"required"`
	PhoneNumber            string `json:"phone_number" validate:"required"`
	ElectricityBoardNumber string `json:"electricity_board_number" validate:"required"`
	Email                  string `json:"email" validate:"required"`
	Password               string `json:"password" validate:"required"`
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterUser handles user registration
// @Summary Register new user
// @Description Register a new electricity customer
// @Tags Account
// @Accept json
// @Produce json
// @Param body body RegisterUserRequest true "Registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /user/register [post]
func (h *AccountHandler) RegisterUser(c *fiber.Ctx) error {
	var req RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "All fields are required")
	}

	if err := h.validate.Struct(&req); err != nil {
		return response.BadRequest(c, "All fields are required")
	}

	input := &services.RegisterUserInput{
		Name:                   strings.TrimSpace(req.Name),
		Address:                strings.TrimSpace(req.Address),
		PhoneNumber:            strings.TrimSpace(req.PhoneNumber),
		ElectricityBoardNumber: strings.TrimSpace(req.ElectricityBoardNumber),
		Email:                  strings.TrimSpace(req.Email),
		Password:               req.Password,
	}

	// Store failures (including a duplicate email hitting the unique
	// index) all surface as the generic internal error.
	if err := h.accountService.RegisterUser(c.Context(), input); err != nil {
		log.Printf("❌ User registration error: %v", err)
		return response.InternalServerError(c)
	}

	return response.Created(c, "User registered successfully.")
}

// RegisterAdmin handles administrator registration
// @Summary Register new administrator
// @Description Register an administrator from an open-ended field set; establishes an admin session
// @Tags Account
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /admin/register [post]
func (h *AccountHandler) RegisterAdmin(c *fiber.Ctx) error {
	var fields map[string]interface{}
	if err := json.Unmarshal(c.Body(), &fields); err != nil || fields == nil {
		return response.BadRequest(c, "Invalid request body")
	}

	token, err := h.accountService.RegisterAdmin(c.Context(), fields)
	if err != nil {
		log.Printf("❌ Administrator registration error: %v", err)
		return response.InternalServerError(c)
	}

	h.setSessionCookie(c, token)
	return response.Created(c, "Administrator registered successfully.")
}

// LoginUser handles user login
// @Summary Login user
// @Description Authenticate a customer; returns the user's identifier, no session
// @Tags Account
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /user/login [post]
func (h *AccountHandler) LoginUser(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return response.Unauthorized(c, "Invalid email or password.")
	}

	userID, err := h.accountService.LoginUser(c.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return response.Unauthorized(c, "Invalid email or password.")
		}
		log.Printf("❌ User login error: %v", err)
		return response.InternalServerError(c)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful!",
		"userId":  userID,
	})
}

// LoginAdmin handles administrator login
// @Summary Login administrator
// @Description Authenticate an administrator and establish a session
// @Tags Account
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /admin/login [post]
func (h *AccountHandler) LoginAdmin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return response.Unauthorized(c, "Invalid email or password.")
	}

	token, err := h.accountService.LoginAdmin(c.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return response.Unauthorized(c, "Invalid email or password.")
		}
		log.Printf("❌ Administrator login error: %v", err)
		return response.InternalServerError(c)
	}

	h.setSessionCookie(c, token)
	return response.Message(c, "Login successful!")
}

// ListUsers returns every user row (admin session required)
// @Summary List users
// @Description Return all registered users
// @Tags Account
// @Produce json
// @Success 200 {array} models.User
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /admin/users [get]
func (h *AccountHandler) ListUsers(c *fiber.Ctx) error {
	// The session middleware has already resolved the admin principal.
	if _, ok := middleware.PrincipalFrom(c); !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	users, err := h.accountService.ListUsers(c.Context())
	if err != nil {
		log.Printf("❌ User listing error: %v", err)
		return response.InternalServerError(c)
	}

	return c.JSON(users)
}

// setSessionCookie sets the opaque admin session token cookie
func (h *AccountHandler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.Session.TTL.Seconds()),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}
