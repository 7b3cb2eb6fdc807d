package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-admin-api/internal/application/auth"
	"github.com/jhoicas/catalogo-admin-api/internal/domain"
	"github.com/jhoicas/catalogo-admin-api/pkg/jwt"
)

// LocalPrincipal key de c.Locals con el auth.Principal autenticado.
const LocalPrincipal = "principal"

// AuthMiddleware valida el Bearer Token (access) y deja el Principal en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Access token is required")
		}
		payload, err := jwt.Verify(jwtSecret, token, jwt.AccessToken)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return fiber.NewError(fiber.StatusUnauthorized, "Token expired")
			}
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}
		c.Locals(LocalPrincipal, auth.PrincipalFromPayload(payload))
		return c.Next()
	}
}

// bearerToken extrae el token de "Bearer <token>"; vacío si el formato no coincide.
func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetPrincipal devuelve el Principal del contexto (después de AuthMiddleware).
func GetPrincipal(c *fiber.Ctx) (auth.Principal, bool) {
	p, ok := c.Locals(LocalPrincipal).(auth.Principal)
	return p, ok && p.ID != ""
}

// RequireRole permite continuar sólo si el rol del Principal está en roles.
// Debe montarse después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := GetPrincipal(c)
		if !ok {
			return domain.ErrUnauthorized
		}
		if !p.HasRole(roles...) {
			return domain.ErrForbidden
		}
		return c.Next()
	}
}
