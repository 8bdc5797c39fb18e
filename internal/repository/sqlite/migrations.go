package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const createProfilesTable = `
CREATE TABLE IF NOT EXISTS salary_profiles (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL DEFAULT '',
    base_hourly_rate TEXT NOT NULL,
    evening_extra TEXT NOT NULL,
    evening_start_time TEXT NOT NULL DEFAULT '18:00',
    weekend_extra TEXT NOT NULL,
    weekend_extra_start_time TEXT NOT NULL DEFAULT '13:00',
    sunday_extra TEXT NOT NULL DEFAULT '0',
    start_date TEXT NOT NULL,
    end_date TEXT
);
`

const createShiftsTable = `
CREATE TABLE IF NOT EXISTS shifts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    date TEXT NOT NULL,
    start_time TEXT NOT NULL,
    end_time TEXT NOT NULL,
    salary_profile_id INTEGER NOT NULL
);
`

// Денежные поля хранятся строками, чтобы не терять точность decimal.
const createCalculationsTable = `
CREATE TABLE IF NOT EXISTS shift_calculations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    shift_id INTEGER NOT NULL UNIQUE REFERENCES shifts(id) ON DELETE CASCADE,
    salary_profile_id INTEGER NOT NULL,
    duration_hours TEXT NOT NULL,
    evening_hours TEXT NOT NULL,
    weekend_hours TEXT NOT NULL,
    sunday_hours TEXT NOT NULL,
    base_pay TEXT NOT NULL,
    evening_extra TEXT NOT NULL,
    weekend_extra TEXT NOT NULL,
    sunday_extra TEXT NOT NULL,
    total_pay TEXT NOT NULL
);
`

const createShiftsDateIndex = `CREATE INDEX IF NOT EXISTS idx_shifts_date ON shifts(date);`

// Open открывает базу с включёнными внешними ключами.
func Open(path string) (*sql.DB, error) {
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_foreign_keys=on"
	}
	db, err := sql.Open("sqlite3", dsn)
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
	for _, q := range []string{createProfilesTable, createShiftsTable, createCalculationsTable, createShiftsDateIndex} {
		if _, err := db.Exec(q); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
