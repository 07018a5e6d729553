package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avelkins/studyplanner/internal/common"
	"github.com/avelkins/studyplanner/internal/server/models"
	"github.com/avelkins/studyplanner/internal/server/repositories/repomanager"
)

// TaskInput carries the fields of a new task. The owner id comes from the
// authenticated context, never from the request body.
type TaskInput struct {
	Title       string
	Description string
	Deadline    time.Time
	Type        string
	Done        bool
	SubjectID   *string
}

// TaskPatch carries the optional fields of a partial task update.
type TaskPatch struct {
	Title       *string
	Description *string
	Deadline    *time.Time
	Type        *string
	Done        *bool
	SubjectID   *string
}

type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

// ListByOwner returns the owner's tasks. A non-empty filter narrows the
// result to tasks whose title contains it, case-insensitively; no match
// is an empty slice, not an error.
func (s *TaskService) ListByOwner(ctx context.Context, ownerID string, filter string) ([]*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)

	var result []*models.Task
	var err error
	if filter == "" {
		result, err = repo.ListByUser(ctx, ownerID)
	} else {
		result, err = repo.SearchByTitle(ctx, ownerID, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}

	return result, nil
}

// ListBySubject returns the owner's tasks attached to the given subject.
// The subject itself must exist and belong to the owner.
func (s *TaskService) ListBySubject(ctx context.Context, ownerID string, subjectID string) ([]*models.Task, error) {
	if err := s.checkSubjectOwnership(ctx, subjectID, ownerID); err != nil {
		return nil, err
	}

	result, err := s.repomanager.Tasks(s.db).ListBySubject(ctx, ownerID, subjectID)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}

	return result, nil
}

// Get returns the task with the given id. A task owned by another user
// yields common.ErrorForbidden, a missing one common.ErrorNotFound.
func (s *TaskService) Get(ctx context.Context, id string, ownerID string) (*models.Task, error) {
	task, err := s.repomanager.Tasks(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading task: %w", err)
	}

	if task.UserID != ownerID {
		return nil, common.ErrorForbidden
	}

	return task, nil
}

// Create stores a new task stamped with the authenticated owner's id. A
// referenced subject must exist and belong to the same owner.
func (s *TaskService) Create(ctx context.Context, ownerID string, input TaskInput) (*models.Task, error) {
	if input.SubjectID != nil {
		if err := s.checkSubjectOwnership(ctx, *input.SubjectID, ownerID); err != nil {
			return nil, err
		}
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Deadline:    input.Deadline,
		Type:        input.Type,
		Done:        input.Done,
		UserID:      ownerID,
		SubjectID:   input.SubjectID,
	}

	task, err := s.repomanager.Tasks(s.db).Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}

	return task, nil
}

// Update applies a partial update to an owned task and returns the stored
// row. Changing the subject reference is subject to the same ownership
// check as Create.
func (s *TaskService) Update(ctx context.Context, id string, ownerID string, patch TaskPatch) (*models.Task, error) {
	task, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Deadline != nil {
		task.Deadline = *patch.Deadline
	}
	if patch.Type != nil {
		task.Type = *patch.Type
	}
	if patch.Done != nil {
		task.Done = *patch.Done
	}
	if patch.SubjectID != nil {
		if err := s.checkSubjectOwnership(ctx, *patch.SubjectID, ownerID); err != nil {
			return nil, err
		}
		task.SubjectID = patch.SubjectID
	}

	updated, err := s.repomanager.Tasks(s.db).Update(ctx, task)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating task: %w", err)
	}

	return updated, nil
}

// Delete removes an owned task and reports the number of rows removed.
func (s *TaskService) Delete(ctx context.Context, id string, ownerID string) (*DeleteResult, error) {
	if _, err := s.Get(ctx, id, ownerID); err != nil {
		return nil, err
	}

	deleted, err := s.repomanager.Tasks(s.db).Delete(ctx, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error deleting task: %w", err)
	}
	if deleted == 0 {
		return nil, common.ErrorNotFound
	}

	return &DeleteResult{DeletedTasks: deleted}, nil
}

// checkSubjectOwnership verifies that the subject exists and belongs to
// ownerID: common.ErrorNotFound if absent, common.ErrorForbidden if owned
// by someone else.
func (s *TaskService) checkSubjectOwnership(ctx context.Context, subjectID string, ownerID string) error {
	subject, err := s.repomanager.Subjects(s.db).GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error loading subject: %w", err)
	}
	if subject.UserID != ownerID {
		return common.ErrorForbidden
	}
	return nil
}
