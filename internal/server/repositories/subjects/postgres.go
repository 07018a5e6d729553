// Package subjects provides a PostgreSQL-backed repository for user-owned
// subjects.
package subjects

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avelkins/studyplanner/internal/common"
	"github.com/avelkins/studyplanner/internal/dbx"
	"github.com/avelkins/studyplanner/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListByUser returns all subjects owned by userID.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Subject, error) {
	query := `
		SELECT id, name, color, user_id, created_at FROM subjects
		WHERE user_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Subject, 0)
	for rows.Next() {
		s := &models.Subject{}
		if err := rows.Scan(&s.ID, &s.Name, &s.Color, &s.UserID, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// GetByID returns the subject with the given id regardless of owner, or
// common.ErrorNotFound. Services compare the owner to tell Forbidden
// from NotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Subject, error) {
	query := `
		SELECT id, name, color, user_id, created_at FROM subjects
		WHERE id = $1
	`

	s := &models.Subject{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&s.ID, &s.Name, &s.Color, &s.UserID, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return s, nil
}

// Create inserts a new subject and fills in the generated id and created_at.
func (r *PostgresRepository) Create(ctx context.Context, subject *models.Subject) (*models.Subject, error) {
	query := `
		INSERT INTO subjects (name, color, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		subject.Name, subject.Color, subject.UserID).Scan(&subject.ID, &subject.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return subject, nil
}

// Update persists name and color for the subject's id, scoped to its owner,
// and returns the stored row.
func (r *PostgresRepository) Update(ctx context.Context, subject *models.Subject) (*models.Subject, error) {
	query := `
		UPDATE subjects SET name = $1, color = $2
		WHERE id = $3 AND user_id = $4
		RETURNING id, name, color, user_id, created_at
	`

	updated := &models.Subject{}
	err := r.db.QueryRowContext(ctx, query,
		subject.Name, subject.Color, subject.ID, subject.UserID).
		Scan(&updated.ID, &updated.Name, &updated.Color, &updated.UserID, &updated.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return updated, nil
}

// Delete removes the subject with the given id, scoped to its owner, and
// reports the number of rows removed.
func (r *PostgresRepository) Delete(ctx context.Context, id string, userID string) (int64, error) {
	query := `
		DELETE FROM subjects
		WHERE id = $1 AND user_id = $2
	`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return affected, nil
}
