package http

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/jhoicas/magazzino-api/internal/application/dto"
	"golang.org/x/crypto/bcrypt"
)

// BasicAuthConfig credenciales únicas de la API. PasswordHash (bcrypt) tiene prioridad sobre Password.
type BasicAuthConfig struct {
	User         string
	Password     string
	PasswordHash string
}

// Enabled indica si hay credenciales configuradas.
func (c BasicAuthConfig) Enabled() bool {
	return c.User != "" && (c.Password != "" || c.PasswordHash != "")
}

// publicPaths rutas que nunca piden credenciales.
var publicPaths = []string{"/health", "/webhooks/"}

// BasicAuthMiddleware protege la API con HTTP basic auth.
func BasicAuthMiddleware(cfg BasicAuthConfig) fiber.Handler {
	return basicauth.New(basicauth.Config{
		Next: func(c *fiber.Ctx) bool {
			p := c.Path()
			for _, pub := range publicPaths {
				if p == pub || strings.HasPrefix(p, pub) {
					return true
				}
			}
			return c.Method() == fiber.MethodOptions
		},
		Realm: "magazzino",
		Authorizer: func(user, pass string) bool {
			if subtle.ConstantTimeCompare([]byte(user), []byte(cfg.User)) != 1 {
				return false
			}
			if cfg.PasswordHash != "" {
				return bcrypt.CompareHashAndPassword([]byte(cfg.PasswordHash), []byte(pass)) == nil
			}
			return subtle.ConstantTimeCompare([]byte(pass), []byte(cfg.Password)) == 1
		},
		Unauthorized: func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="magazzino"`)
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "credenciales requeridas", Code: "UNAUTHORIZED"})
		},
	})
}
