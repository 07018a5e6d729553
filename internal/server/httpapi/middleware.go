package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/avelkins/studyplanner/internal/common"
	"github.com/avelkins/studyplanner/internal/server/auth"
)

const userIDContextKey = "userID"

// accessTokenMiddleware authenticates the request from the auth-token
// header and stores the caller's user id in the request context.
func (s *HTTPServer) accessTokenMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		accessToken := c.Request().Header.Get(common.AccessTokenHeaderName)
		if len(accessToken) == 0 {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
		}

		userID, err := auth.GetUserIDFromToken(accessToken, s.jwtSecret)
		if err != nil {
			if errors.Is(err, common.ErrTokenExpired) {
				return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}

		c.Set(userIDContextKey, userID)
		return next(c)
	}
}

// ownerID returns the authenticated user id stored by accessTokenMiddleware.
func ownerID(c echo.Context) string {
	id, _ := c.Get(userIDContextKey).(string)
	return id
}

func (s *HTTPServer) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Info(c.Request().Context(), "request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.String(),
			)
			return nil
		},
	})
}
