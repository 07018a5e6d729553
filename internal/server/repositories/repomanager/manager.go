package repomanager

import (
	"context"
	"database/sql"

	"github.com/avelkins/studyplanner/internal/dbx"
	"github.com/avelkins/studyplanner/internal/server/repositories/refreshtokens"
	"github.com/avelkins/studyplanner/internal/server/repositories/subjects"
	"github.com/avelkins/studyplanner/internal/server/repositories/tasks"
	"github.com/avelkins/studyplanner/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX, so
// the same repository code runs against the pool or inside a transaction.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Subjects(db dbx.DBTX) subjects.Repository
	Tasks(db dbx.DBTX) tasks.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
