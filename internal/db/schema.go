package db

import (
	"context"

	"taskmanager/internal/domain"
	"taskmanager/internal/logger"
	"taskmanager/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            BIGSERIAL PRIMARY KEY,
	username      VARCHAR(50) NOT NULL UNIQUE,
	password_hash VARCHAR(60) NOT NULL,
	role          VARCHAR(20) NOT NULL DEFAULT 'USER',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS tasks (
	id          BIGSERIAL PRIMARY KEY,
	title       VARCHAR(255) NOT NULL,
	description TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// InitSchema creates the tables if missing and seeds the predefined
// accounts. With reset=true it drops both tables first, losing all data.
func InitSchema(ctx context.Context, db *pgxpool.Pool, reset bool) error {
	if reset {
		logger.Warn("DB_RESET enabled: dropping users and tasks tables, all data will be lost")
		if _, err := db.Exec(ctx, `DROP TABLE IF EXISTS users, tasks`); err != nil {
			return err
		}
	}

	if _, err := db.Exec(ctx, schema); err != nil {
		return err
	}

	return seedUsers(ctx, db)
}

// seedUsers creates the predefined accounts that do not exist yet. The
// insert is idempotent via the unique constraint on username.
func seedUsers(ctx context.Context, db *pgxpool.Pool) error {
	for _, su := range domain.SeedUsers {
		var exists bool
		err := db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, su.Username,
		).Scan(&exists)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		hash, err := service.HashPassword(su.Password)
		if err != nil {
			return err
		}

		_, err = db.Exec(ctx,
			`INSERT INTO users (username, password_hash, role)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (username) DO NOTHING`,
			su.Username, hash, su.Role,
		)
		if err != nil {
			return err
		}
		logger.Info("seeded predefined user", "username", su.Username, "role", su.Role)
	}
	return nil
}
