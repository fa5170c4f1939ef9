package postgres

import (
	"context"
	"database/sql"
)

// Admin exposes the destructive maintenance operations on the relational
// backing.
type Admin struct {
	db *sql.DB
}

func NewAdmin(db *sql.DB) *Admin {
	return &Admin{db: db}
}

func (a *Admin) ClearAll(ctx context.Context) error {
	return ClearAll(ctx, a.db)
}
