package sheet

import (
	"context"

	"github.com/lovefest/lovefest_backend/config"
	"github.com/lovefest/lovefest_backend/pkg/database"
)

// OpenPostgres connects to the configured database and ensures the sheet
// tables exist.
func OpenPostgres(ctx context.Context, c config.DatabaseConfig, name string) (*SQL, error) {
	db, err := database.Open(database.FromCentralConfig(c))
	if err != nil {
		return nil, err
	}
	s, err := newSQL(ctx, db, postgresDialect, name)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}
