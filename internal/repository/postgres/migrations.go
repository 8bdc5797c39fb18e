package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS salary_profiles (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		base_hourly_rate NUMERIC NOT NULL,
		evening_extra NUMERIC NOT NULL,
		evening_start_time TIME NOT NULL DEFAULT '18:00',
		weekend_extra NUMERIC NOT NULL,
		weekend_extra_start_time TIME NOT NULL DEFAULT '13:00',
		sunday_extra NUMERIC NOT NULL DEFAULT 0,
		start_date DATE NOT NULL,
		end_date DATE
	)`,
	`CREATE TABLE IF NOT EXISTS shifts (
		id BIGSERIAL PRIMARY KEY,
		date DATE NOT NULL,
		start_time TIME NOT NULL,
		end_time TIME NOT NULL,
		salary_profile_id BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS shift_calculations (
		id BIGSERIAL PRIMARY KEY,
		shift_id BIGINT NOT NULL UNIQUE REFERENCES shifts(id) ON DELETE CASCADE,
		salary_profile_id BIGINT NOT NULL,
		duration_hours NUMERIC NOT NULL,
		evening_hours NUMERIC NOT NULL,
		weekend_hours NUMERIC NOT NULL,
		sunday_hours NUMERIC NOT NULL,
		base_pay NUMERIC NOT NULL,
		evening_extra NUMERIC NOT NULL,
		weekend_extra NUMERIC NOT NULL,
		sunday_extra NUMERIC NOT NULL,
		total_pay NUMERIC NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_shifts_date ON shifts(date)`,
}

func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func Migrate(db *sql.DB) error {
	for _, q := range schema {
		if _, err := db.Exec(q); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
