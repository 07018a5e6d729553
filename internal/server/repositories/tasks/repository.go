package tasks

import (
	"context"

	"github.com/avelkins/studyplanner/internal/server/models"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]*models.Task, error)
	SearchByTitle(ctx context.Context, userID string, filter string) ([]*models.Task, error)
	ListBySubject(ctx context.Context, userID string, subjectID string) ([]*models.Task, error)
	GetByID(ctx context.Context, id string) (*models.Task, error)
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) (*models.Task, error)
	Delete(ctx context.Context, id string, userID string) (int64, error)
	DeleteBySubject(ctx context.Context, subjectID string, userID string) (int64, error)
}
