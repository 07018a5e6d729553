package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avelkins/studyplanner/internal/common"
	"github.com/avelkins/studyplanner/internal/server/models"
	"github.com/avelkins/studyplanner/internal/server/services"
)

// loginResponse carries the public user plus the issued token pair. The
// access token is additionally mirrored in the auth-token response header.
type loginResponse struct {
	User         *models.User `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
}

type tokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

func (s *HTTPServer) registerUser(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	ctx := c.Request().Context()

	user, err := s.users.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "Registered", "email", user.Email)
	return c.JSON(http.StatusOK, user)
}

func (s *HTTPServer) loginUser(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	ctx := c.Request().Context()

	user, pair, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}

	c.Response().Header().Set(common.AccessTokenHeaderName, pair.AccessToken)
	return c.JSON(http.StatusOK, loginResponse{
		User:         user,
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (s *HTTPServer) refreshToken(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	pair, err := s.users.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}

	c.Response().Header().Set(common.AccessTokenHeaderName, pair.AccessToken)
	return c.JSON(http.StatusOK, tokenResponse{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (s *HTTPServer) userProfile(c echo.Context) error {
	user, err := s.users.Profile(c.Request().Context(), ownerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (s *HTTPServer) updateUser(c echo.Context) error {
	id := c.Param("id")
	if err := validateUUID("id", id); err != nil {
		return err
	}

	// users may only patch their own account
	if id != ownerID(c) {
		return common.ErrorForbidden
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	user, err := s.users.Update(c.Request().Context(), id, services.UserPatch{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}
