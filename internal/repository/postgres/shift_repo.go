package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"shiftpay/internal/domain"
	"shiftpay/internal/model"
)

type PostgresShiftRepo struct {
	db *sql.DB
}

func NewPostgresShiftRepo(db *sql.DB) *PostgresShiftRepo {
	return &PostgresShiftRepo{db: db}
}

const upsertCalculation = `
INSERT INTO shift_calculations (shift_id, salary_profile_id, duration_hours, evening_hours, weekend_hours,
    sunday_hours, base_pay, evening_extra, weekend_extra, sunday_extra, total_pay)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (shift_id) DO UPDATE SET
    salary_profile_id = EXCLUDED.salary_profile_id,
    duration_hours = EXCLUDED.duration_hours,
    evening_hours = EXCLUDED.evening_hours,
    weekend_hours = EXCLUDED.weekend_hours,
    sunday_hours = EXCLUDED.sunday_hours,
    base_pay = EXCLUDED.base_pay,
    evening_extra = EXCLUDED.evening_extra,
    weekend_extra = EXCLUDED.weekend_extra,
    sunday_extra = EXCLUDED.sunday_extra,
    total_pay = EXCLUDED.total_pay
`

const selectShifts = `
SELECT s.id, s.date, s.start_time::text, s.end_time::text, s.salary_profile_id,
    c.id, c.salary_profile_id, c.duration_hours, c.evening_hours, c.weekend_hours, c.sunday_hours,
    c.base_pay, c.evening_extra, c.weekend_extra, c.sunday_extra, c.total_pay
FROM shifts s
LEFT JOIN shift_calculations c ON c.shift_id = s.id
`

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func (r *PostgresShiftRepo) CreateShift(shift model.Shift, calc model.ShiftCalculation) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, domain.Persistence("begin", err)
	}
	var id int64
	err = tx.QueryRow(
		`INSERT INTO shifts (date, start_time, end_time, salary_profile_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		model.DateOnly(shift.Date), shift.StartTime.String(), shift.EndTime.String(), shift.SalaryProfileID,
	).Scan(&id)
	if err != nil {
		return 0, rollback(tx, "insert shift", err)
	}
	calc.ShiftID = id
	if err := saveCalculation(tx, calc); err != nil {
		return 0, rollback(tx, "insert shift calculation", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, domain.Persistence("commit shift", err)
	}
	return id, nil
}

func (r *PostgresShiftRepo) UpdateShift(shift model.Shift, calc model.ShiftCalculation) error {
	tx, err := r.db.Begin()
	if err != nil {
		return domain.Persistence("begin", err)
	}
	res, err := tx.Exec(
		`UPDATE shifts SET date = $1, start_time = $2, end_time = $3, salary_profile_id = $4 WHERE id = $5`,
		model.DateOnly(shift.Date), shift.StartTime.String(), shift.EndTime.String(), shift.SalaryProfileID, shift.ID,
	)
	if err != nil {
		return rollback(tx, "update shift", err)
	}
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		if err == nil {
			err = domain.ErrNotFound
		}
		return rollback(tx, "update shift", err)
	}
	calc.ShiftID = shift.ID
	if err := saveCalculation(tx, calc); err != nil {
		return rollback(tx, "update shift calculation", err)
	}
	if err := tx.Commit(); err != nil {
		return domain.Persistence("commit shift", err)
	}
	return nil
}

// DeleteShift полагается на ON DELETE CASCADE для shift_calculations.
func (r *PostgresShiftRepo) DeleteShift(id int64) error {
	res, err := r.db.Exec(`DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return domain.Persistence("delete shift", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Persistence("delete shift", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresShiftRepo) GetShift(id int64) (model.ShiftWithCalculation, error) {
	item, err := scanShift(r.db.QueryRow(selectShifts+` WHERE s.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return item, domain.ErrNotFound
	}
	if err != nil {
		return item, domain.Persistence("get shift", err)
	}
	return item, nil
}

func (r *PostgresShiftRepo) ListShifts(from, to time.Time) ([]model.ShiftWithCalculation, error) {
	rows, err := r.db.Query(
		selectShifts+` WHERE s.date BETWEEN $1 AND $2 ORDER BY s.date, s.start_time`,
		model.DateOnly(from), model.DateOnly(to),
	)
	if err != nil {
		return nil, domain.Persistence("list shifts", err)
	}
	defer rows.Close()

	var items []model.ShiftWithCalculation
	for rows.Next() {
		item, err := scanShift(rows)
		if err != nil {
			return nil, domain.Persistence("list shifts", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Persistence("list shifts", err)
	}
	return items, nil
}

func (r *PostgresShiftRepo) SaveCalculation(calc model.ShiftCalculation) error {
	if err := saveCalculation(r.db, calc); err != nil {
		return domain.Persistence("save shift calculation", err)
	}
	return nil
}

func saveCalculation(db execer, c model.ShiftCalculation) error {
	_, err := db.Exec(upsertCalculation,
		c.ShiftID, c.SalaryProfileID,
		c.DurationHours, c.EveningHours, c.WeekendHours, c.SundayHours,
		c.BasePay, c.EveningExtra, c.WeekendExtra, c.SundayExtra, c.TotalPay,
	)
	return err
}

func rollback(tx *sql.Tx, op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		_ = tx.Rollback()
		return err
	}
	if rbErr := tx.Rollback(); rbErr != nil {
		return domain.Persistence(op, fmt.Errorf("%w (rollback failed, data may be inconsistent: %v)", err, rbErr))
	}
	return domain.Persistence(op, err)
}

func scanShift(row rowScanner) (model.ShiftWithCalculation, error) {
	var (
		item       model.ShiftWithCalculation
		start, end string
		calcID     sql.NullInt64
		profileID  sql.NullInt64
		nums       [9]decimal.NullDecimal
	)
	err := row.Scan(&item.ID, &item.Date, &start, &end, &item.SalaryProfileID,
		&calcID, &profileID, &nums[0], &nums[1], &nums[2], &nums[3],
		&nums[4], &nums[5], &nums[6], &nums[7], &nums[8])
	if err != nil {
		return item, err
	}
	item.Date = model.DateOnly(item.Date)
	if item.StartTime, err = model.ParseClock(start); err != nil {
		return item, err
	}
	if item.EndTime, err = model.ParseClock(end); err != nil {
		return item, err
	}
	if calcID.Valid {
		item.Calculation = &model.ShiftCalculation{
			ID:              calcID.Int64,
			ShiftID:         item.ID,
			SalaryProfileID: profileID.Int64,
			DurationHours:   nums[0].Decimal,
			EveningHours:    nums[1].Decimal,
			WeekendHours:    nums[2].Decimal,
			SundayHours:     nums[3].Decimal,
			BasePay:         nums[4].Decimal,
			EveningExtra:    nums[5].Decimal,
			WeekendExtra:    nums[6].Decimal,
			SundayExtra:     nums[7].Decimal,
			TotalPay:        nums[8].Decimal,
		}
	}
	return item, nil
}
