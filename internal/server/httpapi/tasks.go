package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avelkins/studyplanner/internal/server/models"
	"github.com/avelkins/studyplanner/internal/server/services"
)

func (s *HTTPServer) listTasks(c echo.Context) error {
	filter := c.QueryParam("filter")

	tasks, err := s.tasks.ListByOwner(c.Request().Context(), ownerID(c), filter)
	if err != nil {
		return err
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}
	return c.JSON(http.StatusOK, tasks)
}

func (s *HTTPServer) listTasksBySubject(c echo.Context) error {
	id := c.Param("id")
	if err := validateUUID("id", id); err != nil {
		return err
	}

	tasks, err := s.tasks.ListBySubject(c.Request().Context(), ownerID(c), id)
	if err != nil {
		return err
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}
	return c.JSON(http.StatusOK, tasks)
}

func (s *HTTPServer) getTask(c echo.Context) error {
	id := c.Param("id")
	if err := validateUUID("id", id); err != nil {
		return err
	}

	task, err := s.tasks.Get(c.Request().Context(), id, ownerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

func (s *HTTPServer) createTask(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	subjectID := req.SubjectID
	task, err := s.tasks.Create(c.Request().Context(), ownerID(c), services.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		Type:        req.Type,
		SubjectID:   &subjectID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createdResponse{
		Message: "Task created successfully",
		Data:    task,
	})
}

func (s *HTTPServer) updateTask(c echo.Context) error {
	id := c.Param("id")
	if err := validateUUID("id", id); err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	task, err := s.tasks.Update(c.Request().Context(), id, ownerID(c), services.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		Type:        req.Type,
		Done:        req.Done,
		SubjectID:   req.SubjectID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (s *HTTPServer) deleteTask(c echo.Context) error {
	id := c.Param("id")
	if err := validateUUID("id", id); err != nil {
		return err
	}

	result, err := s.tasks.Delete(c.Request().Context(), id, ownerID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}
