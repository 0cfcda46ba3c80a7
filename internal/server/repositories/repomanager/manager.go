package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/filemeta/internal/dbx"
	"github.com/dmitrijs2005/filemeta/internal/server/repositories/files"
	"github.com/dmitrijs2005/filemeta/internal/server/repositories/quotas"
	"github.com/dmitrijs2005/filemeta/internal/server/repositories/uploads"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Quotas(db dbx.DBTX) quotas.Repository
	Files(db dbx.DBTX) files.Repository
	Uploads(db dbx.DBTX) uploads.Repository
}
