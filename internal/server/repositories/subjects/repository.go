package subjects

import (
	"context"

	"github.com/avelkins/studyplanner/internal/server/models"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]*models.Subject, error)
	GetByID(ctx context.Context, id string) (*models.Subject, error)
	Create(ctx context.Context, subject *models.Subject) (*models.Subject, error)
	Update(ctx context.Context, subject *models.Subject) (*models.Subject, error)
	Delete(ctx context.Context, id string, userID string) (int64, error)
}
