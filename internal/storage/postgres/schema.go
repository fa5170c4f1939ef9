package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dealdesk/crm-backend/internal/storage"
)

// Table creation statements are idempotent; there is no migration system.
// Schema is provisioned at boot on the first successful connection.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		password VARCHAR(255) NOT NULL,
		username VARCHAR(255),
		first_name VARCHAR(255),
		last_name VARCHAR(255),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS clients (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255),
		phone VARCHAR(50),
		company VARCHAR(255),
		created_by INTEGER REFERENCES users(id),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS deals (
		id SERIAL PRIMARY KEY,
		client_id INTEGER REFERENCES clients(id) ON DELETE CASCADE,
		title VARCHAR(255) NOT NULL,
		value NUMERIC(12,2),
		status VARCHAR(50) NOT NULL DEFAULT 'in_progress',
		notes TEXT,
		created_by INTEGER REFERENCES users(id),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS staging_deals (
		id SERIAL PRIMARY KEY,
		client_name VARCHAR(255) NOT NULL,
		client_email VARCHAR(255),
		client_phone VARCHAR(50),
		client_company VARCHAR(255),
		deal_title VARCHAR(255) NOT NULL,
		deal_notes TEXT,
		status VARCHAR(50) NOT NULL DEFAULT 'in_progress',
		created_by INTEGER REFERENCES users(id),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
}

// EnsureSchema provisions all tables and seeds the default user if absent.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return seedDefaultUser(ctx, db)
}

func seedDefaultUser(ctx context.Context, db *sql.DB) error {
	var id int64
	err := db.QueryRowContext(ctx,
		`SELECT id FROM users WHERE email = $1`, storage.SeedUserEmail).Scan(&id)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("check seed user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(storage.SeedUserPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO users (email, password, username, first_name, last_name)
		 VALUES ($1, $2, $3, $4, $5)`,
		storage.SeedUserEmail, string(hash), storage.SeedUserUsername,
		storage.SeedUserFirstName, storage.SeedUserLastName)
	if err != nil {
		return fmt.Errorf("insert seed user: %w", err)
	}
	return nil
}

// ClearAll truncates every table and re-seeds the default user. Irreversible.
func ClearAll(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx,
		`TRUNCATE TABLE staging_deals, deals, clients, users RESTART IDENTITY CASCADE`)
	if err != nil {
		return fmt.Errorf("truncate: %w", err)
	}
	return seedDefaultUser(ctx, db)
}
