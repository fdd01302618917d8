package db

import (
	"context"
	"fmt"
	"time"

	"github.com/fitfuture/fitfuture/pkg"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// SeedUserID is the fixed user the tracker operates on. The schema is
// multi-user capable, but a fresh instance always gets this one.
const SeedUserID = 1

const schemaSQL = `
CREATE TABLE IF NOT EXISTS users
(
    user_id       SERIAL PRIMARY KEY,
    email         VARCHAR     NOT NULL UNIQUE,
    password_hash VARCHAR,
    created_at    TIMESTAMPTZ NOT NULL,
    status        VARCHAR     NOT NULL DEFAULT 'ACTIVE'
);

CREATE TABLE IF NOT EXISTS user_profiles
(
    user_id            INTEGER PRIMARY KEY REFERENCES users (user_id),
    age                INTEGER,
    gender             VARCHAR,
    height_cm          DOUBLE PRECISION,
    weight_kg          DOUBLE PRECISION,
    bmi                DOUBLE PRECISION,
    resting_heart_rate DOUBLE PRECISION
);

CREATE TABLE IF NOT EXISTS workout_sessions
(
    workout_id             SERIAL PRIMARY KEY,
    user_id                INTEGER NOT NULL REFERENCES users (user_id),
    workout_date           DATE    NOT NULL,
    start_time             VARCHAR,
    end_time               VARCHAR,
    total_duration_minutes INTEGER,
    perceived_intensity    INTEGER,
    source                 VARCHAR,
    notes                  TEXT
);

CREATE INDEX IF NOT EXISTS ix_workout_sessions_user_date
    ON workout_sessions (user_id, workout_date);
`

// Setup creates the tables when missing and seeds the fixed user together
// with an empty profile row. Safe to run on every service start.
func Setup(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	var usersCount int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM users;`).Scan(&usersCount); err != nil {
		return fmt.Errorf("count users: %w", err)
	}

	if usersCount == 0 {
		passwordHash, err := pkg.HashPassword("fitfuture")
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}
		if _, err := pool.Exec(ctx, `
			INSERT INTO users (email, password_hash, created_at, status)
			VALUES ($1, $2, $3, 'ACTIVE');`,
			"test@example.com", passwordHash, time.Now().UTC(),
		); err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		log.Debugln("seed user created")
	}

	var profilesCount int
	if err := pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM user_profiles WHERE user_id = $1;`, SeedUserID,
	).Scan(&profilesCount); err != nil {
		return fmt.Errorf("count profiles: %w", err)
	}

	if profilesCount == 0 {
		if _, err := pool.Exec(ctx, `
			INSERT INTO user_profiles (user_id, age, gender)
			VALUES ($1, $2, $3);`,
			SeedUserID, 22, "M",
		); err != nil {
			return fmt.Errorf("seed profile: %w", err)
		}
		log.Debugln("seed profile created")
	}

	return nil
}
