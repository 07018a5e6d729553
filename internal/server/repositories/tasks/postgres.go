// Package tasks provides a PostgreSQL-backed repository for user-owned
// tasks.
package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avelkins/studyplanner/internal/common"
	"github.com/avelkins/studyplanner/internal/dbx"
	"github.com/avelkins/studyplanner/internal/server/models"
)

const taskColumns = "id, title, description, deadline, type, done, user_id, subject_id, created_at"

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanTask(row interface{ Scan(dest ...any) error }) (*models.Task, error) {
	t := &models.Task{}
	var subjectID sql.NullString
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Deadline, &t.Type,
		&t.Done, &t.UserID, &subjectID, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	if subjectID.Valid {
		t.SubjectID = &subjectID.String
	}
	return t, nil
}

func (r *PostgresRepository) queryTasks(ctx context.Context, query string, args ...any) ([]*models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// ListByUser returns all tasks owned by userID.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Task, error) {
	query := `
		SELECT ` + taskColumns + ` FROM tasks
		WHERE user_id = $1
	`
	return r.queryTasks(ctx, query, userID)
}

// SearchByTitle returns the owner's tasks whose title contains filter,
// case-insensitively. No match is an empty slice, not an error.
func (r *PostgresRepository) SearchByTitle(ctx context.Context, userID string, filter string) ([]*models.Task, error) {
	query := `
		SELECT ` + taskColumns + ` FROM tasks
		WHERE user_id = $1 AND title ILIKE '%' || $2 || '%'
	`
	return r.queryTasks(ctx, query, userID, filter)
}

// ListBySubject returns the owner's tasks attached to subjectID.
func (r *PostgresRepository) ListBySubject(ctx context.Context, userID string, subjectID string) ([]*models.Task, error) {
	query := `
		SELECT ` + taskColumns + ` FROM tasks
		WHERE user_id = $1 AND subject_id = $2
	`
	return r.queryTasks(ctx, query, userID, subjectID)
}

// GetByID returns the task with the given id regardless of owner, or
// common.ErrorNotFound. Services compare the owner to tell Forbidden
// from NotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	query := `
		SELECT ` + taskColumns + ` FROM tasks
		WHERE id = $1
	`

	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return t, nil
}

// Create inserts a new task and fills in the generated id and created_at.
func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query := `
		INSERT INTO tasks (title, description, deadline, type, done, user_id, subject_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		task.Title, task.Description, task.Deadline, task.Type,
		task.Done, task.UserID, task.SubjectID).Scan(&task.ID, &task.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

// Update persists the task's mutable fields, scoped to its owner, and
// returns the stored row.
func (r *PostgresRepository) Update(ctx context.Context, task *models.Task) (*models.Task, error) {
	query := `
		UPDATE tasks SET title = $1, description = $2, deadline = $3, type = $4, done = $5, subject_id = $6
		WHERE id = $7 AND user_id = $8
		RETURNING ` + taskColumns + `
	`

	updated, err := scanTask(r.db.QueryRowContext(ctx, query,
		task.Title, task.Description, task.Deadline, task.Type,
		task.Done, task.SubjectID, task.ID, task.UserID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return updated, nil
}

// Delete removes the task with the given id, scoped to its owner, and
// reports the number of rows removed.
func (r *PostgresRepository) Delete(ctx context.Context, id string, userID string) (int64, error) {
	query := `
		DELETE FROM tasks
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

// DeleteBySubject removes every task of the owner that references
// subjectID and reports the number of rows removed. Used by the subject
// cascade delete.
func (r *PostgresRepository) DeleteBySubject(ctx context.Context, subjectID string, userID string) (int64, error) {
	query := `
		DELETE FROM tasks
		WHERE subject_id = $1 AND user_id = $2
	`

	res, err := r.db.ExecContext(ctx, query, subjectID, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return affected, nil
}
