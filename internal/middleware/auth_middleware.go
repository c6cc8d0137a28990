package middleware

import (
	"fmt"
	"strings"

	"quizforge/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	UserIDKey           = "userID"   // Key for storing UserID in fiber.Ctx locals
	UserRoleKey         = "userRole" // Key for storing the caller's role in fiber.Ctx locals
)

// Protected is a middleware function that protects routes by requiring a valid JWT.
// It validates the token using the provided AuthService and sets the userID and
// role in the context.
func Protected(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "MISSING_AUTH_HEADER",
				Message: "Authorization header is missing",
				Status:  fiber.StatusUnauthorized,
			})
		}

		if !strings.HasPrefix(authHeader, BearerSchema) {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_AUTH_SCHEME",
				Message: "Authorization scheme is not Bearer",
				Status:  fiber.StatusUnauthorized,
			})
		}

		tokenString := strings.TrimPrefix(authHeader, BearerSchema)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "EMPTY_TOKEN",
				Message: "Token is empty",
				Status:  fiber.StatusUnauthorized,
			})
		}

		claims, err := authService.ValidateJWT(c.Context(), tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: err.Error(),
				Status:  fiber.StatusUnauthorized,
			})
		}

		c.Locals(UserIDKey, claims.UserID)
		c.Locals(UserRoleKey, claims.Role)

		return c.Next()
	}
}

// RequireRole gates a route group to callers carrying the given role.
// It must run after Protected.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		callerRole, _ := c.Locals(UserRoleKey).(string)
		if callerRole != role {
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
				Code:    "FORBIDDEN_ROLE",
				Message: fmt.Sprintf("This endpoint requires the %s role", role),
				Status:  fiber.StatusForbidden,
			})
		}
		return c.Next()
	}
}
