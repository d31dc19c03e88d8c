package middleware

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"stockroom/internal/auth"
	"stockroom/internal/errors"
)

// userContextKey is where the resolved user id lives in the echo context.
const userContextKey = "user"

// RequireSession gates a route group behind a valid session cookie. The cookie
// token is verified and resolved against the session store; on success the
// user id is attached to the request context, otherwise the request is
// rejected with 401 before any handler runs.
func RequireSession(sessions auth.Sessions) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  userContextKey,
		TokenLookup: "cookie:" + auth.SessionCookie,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			userID, err := sessions.Resolve(c.Request().Context(), token)
			if err != nil {
				return nil, err
			}
			return userID, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			httpErr := errors.NewHTTPError(http.StatusUnauthorized, errors.ErrUnauthorized.Error(), "UNAUTHORIZED")
			return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	})
}

// UserID returns the authenticated user id attached by RequireSession.
func UserID(c echo.Context) (uint, bool) {
	id, ok := c.Get(userContextKey).(uint)
	return id, ok
}

// ResolveCookie resolves the session cookie on an ungated route. Used by
// legacy endpoints that behave differently for logged-in callers.
func ResolveCookie(c echo.Context, sessions auth.Sessions) (uint, error) {
	cookie, err := c.Cookie(auth.SessionCookie)
	if err != nil {
		return 0, auth.ErrNoSession
	}
	return sessions.Resolve(c.Request().Context(), cookie.Value)
}
