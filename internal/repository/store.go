package repository

import (
	"database/sql"
	"log"

	"shiftpay/internal/domain"
	"shiftpay/internal/repository/postgres"
	"shiftpay/internal/repository/sqlite"
)

type Store struct {
	DB       *sql.DB
	Driver   string
	Profiles domain.ProfileRepo
	Shifts   domain.ShiftRepo
}

// Open подключается к Postgres, если задан databaseURL, иначе к файлу sqlite, и накатывает схему.
func Open(databaseURL, sqlitePath string) (*Store, error) {
	if databaseURL != "" {
		db, err := postgres.Open(databaseURL)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(db); err != nil {
			db.Close()
			return nil, err
		}
		log.Println("[db] postgres")
		return &Store{
			DB:       db,
			Driver:   "postgres",
			Profiles: postgres.NewPostgresProfileRepo(db),
			Shifts:   postgres.NewPostgresShiftRepo(db),
		}, nil
	}

	db, err := sqlite.Open(sqlitePath)
	if err != nil {
		return nil, err
	}
	if err := sqlite.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	log.Printf("[db] sqlite %s", sqlitePath)
	return &Store{
		DB:       db,
		Driver:   "sqlite3",
		Profiles: sqlite.NewSqliteProfileRepo(db),
		Shifts:   sqlite.NewSqliteShiftRepo(db),
	}, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}
