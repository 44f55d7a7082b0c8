package controllers

import (
	"context"
	"errors"
	"time"

	"markbook_go/config"
	"markbook_go/database"
	"markbook_go/middleware"
	"markbook_go/models"
	"markbook_go/services"
	"markbook_go/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var validate = validator.New()

type AuthController struct{}

// RegisterRequest creates a teacher account
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Subject  string `json:"subject" validate:"required,max=50"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// setTokenCookie attaches the session token to the response
func setTokenCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Expires:  time.Now().Add(config.AppConfig.JWTExpiresIn),
		HTTPOnly: true,
		SameSite: "Lax",
		Secure:   config.AppConfig.AppEnv == "production",
	})
}

// Register creates a teacher account and profile, then issues a token
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Validation failed", "error": err.Error()})
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	name := utils.SanitizeString(req.Name)
	email := utils.SanitizeString(req.Email)
	subject := utils.SanitizeString(req.Subject)

	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Name:         name,
			Email:        email,
			PasswordHash: hash,
			Role:         models.RoleTeacher,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		teacher := models.Teacher{Name: name, Email: email, Subject: subject}
		return tx.Create(&teacher).Error
	})
	if txErr != nil {
		if services.IsDuplicateKey(txErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": services.ErrUserExists.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create account"})
	}

	token, err := middleware.GenerateToken(email, models.RoleTeacher)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate token"})
	}
	setTokenCookie(c, token)

	middleware.LogActivity(c, "REGISTER", "auth", 0, fiber.Map{"email": email})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "register successful",
		"token":   token,
	})
}

// Login authenticates an account and sets the session cookie
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Validation failed", "error": err.Error()})
	}

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Wrong email or password"})
	}

	if err := utils.CheckPassword(req.Password, user.PasswordHash); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Wrong email or password"})
	}

	token, err := middleware.GenerateToken(user.Email, user.Role)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate token"})
	}
	setTokenCookie(c, token)

	middleware.LogActivity(c, "LOGIN", "auth", user.ID, fiber.Map{"email": user.Email, "role": user.Role})

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Me returns the authenticated account
func (ac *AuthController) Me(c *fiber.Ctx) error {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	return c.JSON(fiber.Map{
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Logout clears the session cookie and blacklists the token in Redis for
// the rest of its lifetime
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	tokenString := c.Cookies(middleware.CookieName)
	if tokenString == "" {
		if authHeader := c.Get("Authorization"); len(authHeader) > 7 {
			tokenString = authHeader[7:]
		}
	}

	if tokenString != "" {
		if rc := database.GetRedisClient(); rc != nil {
			key := "blacklist:jwt:" + tokenString
			if err := rc.Set(context.Background(), key, "1", config.AppConfig.JWTExpiresIn).Err(); err != nil {
				middleware.LogActivity(c, "LOGOUT", "auth", 0, fiber.Map{"error": err.Error()})
			}
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	if user, err := middleware.GetCurrentUser(c); err == nil {
		middleware.LogActivity(c, "LOGOUT", "auth", user.ID, fiber.Map{"email": user.Email})
	}

	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// mapServiceError converts the service error taxonomy to an HTTP response.
// Scope violations arrive as not-found and are answered identically.
func mapServiceError(c *fiber.Ctx, err error) error {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Msg})
	}
	if services.IsNotFound(err) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
}
