package httpapi

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/avelkins/studyplanner/internal/common"
	"github.com/avelkins/studyplanner/internal/server/models"
)

// fieldError builds a validation error for one request field. The message
// ends up verbatim in the 400 payload, e.g.:
//
//	validation error: "name" length must be at least 3 characters long
func fieldError(field, msg string) error {
	return fmt.Errorf("%w: %q %s", common.ErrorValidation, field, msg)
}

func validateLength(field, value string, min, max int) error {
	if len(value) < min {
		return fieldError(field, fmt.Sprintf("length must be at least %d characters long", min))
	}
	if len(value) > max {
		return fieldError(field, fmt.Sprintf("length must be less than or equal to %d characters long", max))
	}
	return nil
}

func validateEmail(field, value string) error {
	if err := validateLength(field, value, 6, 255); err != nil {
		return err
	}
	if _, err := mail.ParseAddress(value); err != nil {
		return fieldError(field, "must be a valid email")
	}
	return nil
}

func validateUUID(field, value string) error {
	if _, err := uuid.Parse(value); err != nil {
		return fieldError(field, "must be a valid id")
	}
	return nil
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *registerRequest) Validate() error {
	if err := validateLength("name", r.Name, 3, 255); err != nil {
		return err
	}
	if err := validateEmail("email", r.Email); err != nil {
		return err
	}
	return validateLength("password", r.Password, 6, 1024)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *loginRequest) Validate() error {
	if err := validateEmail("email", r.Email); err != nil {
		return err
	}
	return validateLength("password", r.Password, 6, 1024)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *refreshRequest) Validate() error {
	if r.RefreshToken == "" {
		return fieldError("refresh_token", "is required")
	}
	return nil
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (r *updateUserRequest) Validate() error {
	if r.Name != nil {
		if err := validateLength("name", *r.Name, 3, 255); err != nil {
			return err
		}
	}
	if r.Email != nil {
		if err := validateEmail("email", *r.Email); err != nil {
			return err
		}
	}
	if r.Password != nil {
		if err := validateLength("password", *r.Password, 6, 1024); err != nil {
			return err
		}
	}
	return nil
}

type createSubjectRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (r *createSubjectRequest) Validate() error {
	if err := validateLength("name", r.Name, 3, 50); err != nil {
		return err
	}
	return validateLength("color", r.Color, 3, 1024)
}

type updateSubjectRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

func (r *updateSubjectRequest) Validate() error {
	if r.Name != nil {
		if err := validateLength("name", *r.Name, 3, 50); err != nil {
			return err
		}
	}
	if r.Color != nil {
		if err := validateLength("color", *r.Color, 3, 1024); err != nil {
			return err
		}
	}
	return nil
}

type createTaskRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
	Type        string    `json:"type"`
	SubjectID   string    `json:"subject_id"`
}

func (r *createTaskRequest) Validate() error {
	if err := validateLength("title", r.Title, 3, 50); err != nil {
		return err
	}
	// description may be omitted or empty
	if r.Description != "" {
		if err := validateLength("description", r.Description, 3, 1024); err != nil {
			return err
		}
	}
	if r.Deadline.IsZero() {
		return fieldError("deadline", "is required")
	}
	if !models.ValidTaskType(r.Type) {
		return fieldError("type", "must be one of [project, homework]")
	}
	if r.SubjectID == "" {
		return fieldError("subject_id", "is required")
	}
	return validateUUID("subject_id", r.SubjectID)
}

type updateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	Type        *string    `json:"type"`
	Done        *bool      `json:"done"`
	SubjectID   *string    `json:"subject_id"`
}

func (r *updateTaskRequest) Validate() error {
	if r.Title != nil {
		if err := validateLength("title", *r.Title, 3, 50); err != nil {
			return err
		}
	}
	if r.Description != nil && *r.Description != "" {
		if err := validateLength("description", *r.Description, 3, 1024); err != nil {
			return err
		}
	}
	if r.Type != nil && !models.ValidTaskType(*r.Type) {
		return fieldError("type", "must be one of [project, homework]")
	}
	if r.SubjectID != nil {
		if err := validateUUID("subject_id", *r.SubjectID); err != nil {
			return err
		}
	}
	return nil
}
