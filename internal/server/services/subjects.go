package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avelkins/studyplanner/internal/common"
	"github.com/avelkins/studyplanner/internal/dbx"
	"github.com/avelkins/studyplanner/internal/server/models"
	"github.com/avelkins/studyplanner/internal/server/repositories/repomanager"
)

// SubjectPatch carries the optional fields of a partial subject update.
type SubjectPatch struct {
	Name  *string
	Color *string
}

// DeleteResult reports how many rows a delete operation removed.
type DeleteResult struct {
	DeletedSubjects int64 `json:"deleted_subjects,omitempty"`
	DeletedTasks    int64 `json:"deleted_tasks"`
}

type SubjectService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewSubjectService(db *sql.DB, m repomanager.RepositoryManager) *SubjectService {
	return &SubjectService{db: db, repomanager: m}
}

// ListByOwner returns all subjects owned by ownerID.
func (s *SubjectService) ListByOwner(ctx context.Context, ownerID string) ([]*models.Subject, error) {
	result, err := s.repomanager.Subjects(s.db).ListByUser(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing subjects: %w", err)
	}
	return result, nil
}

// Get returns the subject with the given id. A subject owned by another
// user yields common.ErrorForbidden, a missing one common.ErrorNotFound.
func (s *SubjectService) Get(ctx context.Context, id string, ownerID string) (*models.Subject, error) {
	subject, err := s.repomanager.Subjects(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading subject: %w", err)
	}

	if subject.UserID != ownerID {
		return nil, common.ErrorForbidden
	}

	return subject, nil
}

// Create stores a new subject stamped with the authenticated owner's id.
func (s *SubjectService) Create(ctx context.Context, ownerID string, name, color string) (*models.Subject, error) {
	subject := &models.Subject{
		Name:   name,
		Color:  color,
		UserID: ownerID,
	}

	subject, err := s.repomanager.Subjects(s.db).Create(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("error creating subject: %w", err)
	}

	return subject, nil
}

// Update applies a partial update to an owned subject and returns the
// stored row.
func (s *SubjectService) Update(ctx context.Context, id string, ownerID string, patch SubjectPatch) (*models.Subject, error) {
	subject, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		subject.Name = *patch.Name
	}
	if patch.Color != nil {
		subject.Color = *patch.Color
	}

	updated, err := s.repomanager.Subjects(s.db).Update(ctx, subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating subject: %w", err)
	}

	return updated, nil
}

// Delete removes an owned subject and, first, every task referencing it.
// Both deletes run inside one transaction, so a subject is never removed
// while its tasks survive.
func (s *SubjectService) Delete(ctx context.Context, id string, ownerID string) (*DeleteResult, error) {
	if _, err := s.Get(ctx, id, ownerID); err != nil {
		return nil, err
	}

	result := &DeleteResult{}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		deletedTasks, err := s.repomanager.Tasks(tx).DeleteBySubject(ctx, id, ownerID)
		if err != nil {
			return err
		}

		deletedSubjects, err := s.repomanager.Subjects(tx).Delete(ctx, id, ownerID)
		if err != nil {
			return err
		}
		if deletedSubjects == 0 {
			return common.ErrorNotFound
		}

		result.DeletedTasks = deletedTasks
		result.DeletedSubjects = deletedSubjects
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error deleting subject: %w", err)
	}

	return result, nil
}
