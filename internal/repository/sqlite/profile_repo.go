package sqlite

import (
	"database/sql"
	"errors"

	"shiftpay/internal/domain"
	"shiftpay/internal/model"
)

type SqliteProfileRepo struct {
	db *sql.DB
}

func NewSqliteProfileRepo(db *sql.DB) *SqliteProfileRepo {
	return &SqliteProfileRepo{db: db}
}

const profileColumns = `id, name, base_hourly_rate, evening_extra, evening_start_time,
	weekend_extra, weekend_extra_start_time, sunday_extra, start_date, end_date`

func (r *SqliteProfileRepo) ListProfiles() ([]model.SalaryProfile, error) {
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

func (r *SqliteProfileRepo) GetProfile(id int64) (model.SalaryProfile, error) {
	p, err := scanProfile(r.db.QueryRow(`SELECT `+profileColumns+` FROM salary_profiles WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.SalaryProfile{}, domain.ErrNotFound
	}
	if err != nil {
		return model.SalaryProfile{}, domain.Persistence("get profile", err)
	}
	return p, nil
}

func (r *SqliteProfileRepo) CreateProfile(p model.SalaryProfile) (int64, error) {
	res, err := r.db.Exec(
		`INSERT INTO salary_profiles (name, base_hourly_rate, evening_extra, evening_start_time,
			weekend_extra, weekend_extra_start_time, sunday_extra, start_date, end_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name,
		p.BaseHourlyRate.String(),
		p.EveningExtra.String(),
		p.EveningStartTime.String(),
		p.WeekendExtra.String(),
		p.WeekendExtraStartTime.String(),
		p.SundayExtra.String(),
		p.StartDate.Format(model.DateLayout),
		formatEndDate(p),
	)
	if err != nil {
		return 0, domain.Persistence("create profile", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.Persistence("create profile", err)
	}
	return id, nil
}

func (r *SqliteProfileRepo) UpdateProfile(p model.SalaryProfile) error {
	res, err := r.db.Exec(
		`UPDATE salary_profiles SET name = ?, base_hourly_rate = ?, evening_extra = ?, evening_start_time = ?,
			weekend_extra = ?, weekend_extra_start_time = ?, sunday_extra = ?, start_date = ?, end_date = ?
		 WHERE id = ?`,
		p.Name,
		p.BaseHourlyRate.String(),
		p.EveningExtra.String(),
		p.EveningStartTime.String(),
		p.WeekendExtra.String(),
		p.WeekendExtraStartTime.String(),
		p.SundayExtra.String(),
		p.StartDate.Format(model.DateLayout),
		formatEndDate(p),
		p.ID,
	)
	if err != nil {
		return domain.Persistence("update profile", err)
	}
	return requireRow(res, "update profile")
}

func (r *SqliteProfileRepo) DeleteProfile(id int64) error {
	res, err := r.db.Exec(`DELETE FROM salary_profiles WHERE id = ?`, id)
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
		startDate    string
		endDate      sql.NullString
	)
	err := row.Scan(&p.ID, &p.Name, &p.BaseHourlyRate, &p.EveningExtra, &eveningStart,
		&p.WeekendExtra, &weekendStart, &p.SundayExtra, &startDate, &endDate)
	if err != nil {
		return p, err
	}
	if p.EveningStartTime, err = model.ParseClock(eveningStart); err != nil {
		return p, err
	}
	if p.WeekendExtraStartTime, err = model.ParseClock(weekendStart); err != nil {
		return p, err
	}
	if p.StartDate, err = model.ParseDate(startDate); err != nil {
		return p, err
	}
	if endDate.Valid && endDate.String != "" {
		end, err := model.ParseDate(endDate.String)
		if err != nil {
			return p, err
		}
		p.EndDate = &end
	}
	return p, nil
}

func formatEndDate(p model.SalaryProfile) any {
	if p.EndDate == nil {
		return nil
	}
	return p.EndDate.Format(model.DateLayout)
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
