package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avelkins/studyplanner/internal/server/models"
	"github.com/avelkins/studyplanner/internal/server/services"
)

// createdResponse wraps a newly created entity.
type createdResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func (s *HTTPServer) listSubjects(c echo.Context) error {
	subjects, err := s.subjects.ListByOwner(c.Request().Context(), ownerID(c))
	if err != nil {
		return err
	}
	if subjects == nil {
		subjects = []*models.Subject{}
	}
	return c.JSON(http.StatusOK, subjects)
}

func (s *HTTPServer) getSubject(c echo.Context) error {
	id := c.Param("id")
	if err := validateUUID("id", id); err != nil {
		return err
	}

	subject, err := s.subjects.Get(c.Request().Context(), id, ownerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, subject)
}

func (s *HTTPServer) createSubject(c echo.Context) error {
	var req createSubjectRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	subject, err := s.subjects.Create(c.Request().Context(), ownerID(c), req.Name, req.Color)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createdResponse{
		Message: "Subject created successfully",
		Data:    subject,
	})
}

func (s *HTTPServer) updateSubject(c echo.Context) error {
	id := c.Param("id")
	if err := validateUUID("id", id); err != nil {
		return err
	}

	var req updateSubjectRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	subject, err := s.subjects.Update(c.Request().Context(), id, ownerID(c), services.SubjectPatch{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, subject)
}

func (s *HTTPServer) deleteSubject(c echo.Context) error {
	id := c.Param("id")
	if err := validateUUID("id", id); err != nil {
		return err
	}

	result, err := s.subjects.Delete(c.Request().Context(), id, ownerID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}
