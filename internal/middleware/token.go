package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"IntelliguardGolang/internal/entity"
	jwtPkg "IntelliguardGolang/pkg/jwt"
)

const (
	AccessTokenSecret = "JWT_ACCESS_TOKEN_SECRET"
)

func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")

	if authHeader == "" {
		m.log.WithFields(logrus.Fields{
			"path":  ctx.Path(),
			"error": "Authorization header is missing",
		}).Warn("Authorization header check")
		return unauthorized(ctx)
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		m.log.WithFields(logrus.Fields{
			"path":  ctx.Path(),
			"error": "Authorization header format is invalid",
		}).Warn("Authorization header check")
		return unauthorized(ctx)
	}

	employeeToken, err := jwtPkg.VerifyTokenHeader(ctx, AccessTokenSecret)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"path":  ctx.Path(),
			"error": err.Error(),
		}).Warn("Token verification failed")
		return unauthorized(ctx)
	}

	claims, ok := employeeToken.Claims.(jwt.MapClaims)
	if !ok {
		m.log.WithFields(logrus.Fields{
			"path":  ctx.Path(),
			"error": "Invalid token claims",
		}).Warn("Token claims check")
		return unauthorized(ctx)
	}

	id, idOk := claims["id"].(string)
	email, emailOk := claims["email"].(string)
	username, usernameOk := claims["username"].(string)
	role, roleOk := claims["role"].(string)
	if !idOk || !emailOk || !usernameOk || !roleOk {
		m.log.WithFields(logrus.Fields{
			"path":  ctx.Path(),
			"error": "Token claims are missing required fields",
		}).Warn("Token claims check")
		return unauthorized(ctx)
	}

	employee := entity.EmployeeLoginData{
		ID:       id,
		Email:    email,
		Username: username,
		Role:     role,
	}
	ctx.Locals("employee", employee)

	return ctx.Next()
}

// NewAdminMiddleware must run after NewTokenMiddleware.
func (m *middleware) NewAdminMiddleware(ctx *fiber.Ctx) error {
	employee, ok := ctx.Locals("employee").(entity.EmployeeLoginData)
	if !ok || employee.Role != "admin" {
		m.log.WithFields(logrus.Fields{
			"path": ctx.Path(),
		}).Warn("Admin access denied")
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Admin access required",
		})
	}

	return ctx.Next()
}

func unauthorized(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized, access token invalid or expired",
	})
}
