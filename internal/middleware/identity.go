package middleware

import "github.com/labstack/echo/v4"

const sessionKey = "session_id"

// SessionID returns the session ID placed in the context by Session, or
// "anon" when the middleware did not run.
func SessionID(c echo.Context) string {
	if s, ok := c.Get(sessionKey).(string); ok && s != "" {
		return s
	}
	return "anon"
}
