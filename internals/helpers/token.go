// file: internals/helpers/token.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kursusku_backend/internals/constants"
)

// Keys Locals yang di-hydrate oleh middleware auth.
const (
	LocUserID      = "user_id"
	LocActorKind   = "actor_kind"
	LocRolesGlobal = "roles_global"
	LocRawToken    = "raw_token"
)

// GetUserIDFromToken membaca user_id dari Locals (diisi middleware JWT).
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Locals(LocUserID)
	if raw == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: token tidak valid")
	}
	switch v := raw.(type) {
	case uuid.UUID:
		return v, nil
	case string:
		id, err := uuid.Parse(strings.TrimSpace(v))
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id tidak valid dalam token")
		}
		return id, nil
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id tidak dikenali")
	}
}

// GetActorKindFromToken membaca actor_kind dari Locals; default student.
// Core mempercayai nilai ini apa adanya (role sudah diputuskan saat login).
func GetActorKindFromToken(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocActorKind).(string); ok {
		kind := strings.ToLower(strings.TrimSpace(v))
		if constants.ValidActorKind(kind) {
			return kind
		}
	}
	return constants.ActorStudent
}

// GetRolesFromToken membaca roles_global dari Locals (slice string / []any).
func GetRolesFromToken(c *fiber.Ctx) []string {
	switch v := c.Locals(LocRolesGlobal).(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, it := range v {
			if s, ok := it.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}

func HasRole(c *fiber.Ctx, wanted ...string) bool {
	roles := GetRolesFromToken(c)
	for _, r := range roles {
		for _, w := range wanted {
			if strings.EqualFold(r, w) {
				return true
			}
		}
	}
	return false
}
