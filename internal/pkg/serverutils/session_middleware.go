package serverutils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	LocalDraftScope    = "draft_scope"
	DraftSessionCookie = "wp_draft_session"
)

// DraftSessionMiddleware decides which draft slot a request works on:
// the user's own when authenticated, otherwise one bound to a browser cookie.
// Must run after the JWT middleware.
func DraftSessionMiddleware(secure bool) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if userId, ok := ctx.Locals(LocalUserID).(string); ok && userId != "" {
			ctx.Locals(LocalDraftScope, "user:"+userId)
			return ctx.Next()
		}

		sessionId := ctx.Cookies(DraftSessionCookie)
		if _, err := uuid.Parse(sessionId); err != nil {
			sessionId = uuid.NewString()
			ctx.Cookie(&fiber.Cookie{
				Name:     DraftSessionCookie,
				Value:    sessionId,
				Path:     "/",
				HTTPOnly: true,
				Secure:   secure,
				SameSite: fiber.CookieSameSiteLaxMode,
				Expires:  time.Now().Add(24 * time.Hour),
			})
		}
		ctx.Locals(LocalDraftScope, "anon:"+sessionId)
		return ctx.Next()
	}
}

// DraftScope returns the scope chosen by DraftSessionMiddleware.
func DraftScope(ctx *fiber.Ctx) string {
	scope, _ := ctx.Locals(LocalDraftScope).(string)
	return scope
}
