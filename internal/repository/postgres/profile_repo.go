package postgres

import (
	"database/sql"
	"errors"
	"time"

	"shiftpay/internal/domain"
	"shiftpay/internal/model"
)

type PostgresProfileRepo struct {
	db *sql.DB
}

func NewPostgresProfileRepo(db *sql.DB) *PostgresProfileRepo {
	return &PostgresProfileRepo{db: db}
}

// TIME приводится к тексту: lib/pq отдаёт его как time.Time с нулевой датой.
const profileColumns = `id, name, base_hourly_rate, evening_extra, evening_start_time::text,
	weekend_extra, weekend_extra_start_time::text, sunday_extra, start_date, end_date`

func (r *PostgresProfileRepo) ListProfiles() ([]model.SalaryProfile, error) {
	rows, err := r.db.Query(`SELECT ` + profileColumns + ` FROM salary_profiles ORDER BY start_date DESC, id`)
	if err != nil {
		return nil, domain.Persistence("list profiles", err)
	}
	defer rows.Close()

	var profiles []model.SalaryProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, domain.Persistence("list profiles", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Persistence("list profiles", err)
	}
	return profiles, nil
}

func (r *PostgresProfileRepo) GetProfile(id int64) (model.SalaryProfile, error) {
	p, err := scanProfile(r.db.QueryRow(`SELECT `+profileColumns+` FROM salary_profiles WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.SalaryProfile{}, domain.ErrNotFound
	}
	if err != nil {
		return model.SalaryProfile{}, domain.Persistence("get profile", err)
	}
	return p, nil
}

func (r *PostgresProfileRepo) CreateProfile(p model.SalaryProfile) (int64, error) {
	var id int64
	err := r.db.QueryRow(
		`INSERT INTO salary_profiles (name, base_hourly_rate, evening_extra, evening_start_time,
			weekend_extra, weekend_extra_start_time, sunday_extra, start_date, end_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		p.Name, p.BaseHourlyRate, p.EveningExtra, p.EveningStartTime.String(),
		p.WeekendExtra, p.WeekendExtraStartTime.String(), p.SundayExtra,
		model.DateOnly(p.StartDate), endDate(p),
	).Scan(&id)
	if err != nil {
		return 0, domain.Persistence("create profile", err)
	}
	return id, nil
}

func (r *PostgresProfileRepo) UpdateProfile(p model.SalaryProfile) error {
	res, err := r.db.Exec(
		`UPDATE salary_profiles SET name = $1, base_hourly_rate = $2, evening_extra = $3, evening_start_time = $4,
			weekend_extra = $5, weekend_extra_start_time = $6, sunday_extra = $7, start_date = $8, end_date = $9
		 WHERE id = $10`,
		p.Name, p.BaseHourlyRate, p.EveningExtra, p.EveningStartTime.String(),
		p.WeekendExtra, p.WeekendExtraStartTime.String(), p.SundayExtra,
		model.DateOnly(p.StartDate), endDate(p), p.ID,
	)
	if err != nil {
		return domain.Persistence("update profile", err)
	}
	return requireRow(res, "update profile")
}

func (r *PostgresProfileRepo) DeleteProfile(id int64) error {
	res, err := r.db.Exec(`DELETE FROM salary_profiles WHERE id = $1`, id)
	if err != nil {
		return domain.Persistence("delete profile", err)
	}
	return requireRow(res, "delete profile")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (model.SalaryProfile, error) {
	var (
		p            model.SalaryProfile
		eveningStart string
		weekendStart string
		end          sql.NullTime
	)
	err := row.Scan(&p.ID, &p.Name, &p.BaseHourlyRate, &p.EveningExtra, &eveningStart,
		&p.WeekendExtra, &weekendStart, &p.SundayExtra, &p.StartDate, &end)
	if err != nil {
		return p, err
	}
	if p.EveningStartTime, err = model.ParseClock(eveningStart); err != nil {
		return p, err
	}
	if p.WeekendExtraStartTime, err = model.ParseClock(weekendStart); err != nil {
		return p, err
	}
	p.StartDate = model.DateOnly(p.StartDate)
	if end.Valid {
		d := model.DateOnly(end.Time)
		p.EndDate = &d
	}
	return p, nil
}

func endDate(p model.SalaryProfile) *time.Time {
	if p.EndDate == nil {
		return nil
	}
	d := model.DateOnly(*p.EndDate)
	return &d
}

func requireRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Persistence(op, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
