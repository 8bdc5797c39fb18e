package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"shiftpay/internal/domain"
	"shiftpay/internal/model"
)

type SqliteShiftRepo struct {
	db *sql.DB
}

func NewSqliteShiftRepo(db *sql.DB) *SqliteShiftRepo {
	return &SqliteShiftRepo{db: db}
}

const upsertCalculation = `
INSERT INTO shift_calculations (shift_id, salary_profile_id, duration_hours, evening_hours, weekend_hours,
    sunday_hours, base_pay, evening_extra, weekend_extra, sunday_extra, total_pay)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(shift_id) DO UPDATE SET
    salary_profile_id = excluded.salary_profile_id,
    duration_hours = excluded.duration_hours,
    evening_hours = excluded.evening_hours,
    weekend_hours = excluded.weekend_hours,
    sunday_hours = excluded.sunday_hours,
    base_pay = excluded.base_pay,
    evening_extra = excluded.evening_extra,
    weekend_extra = excluded.weekend_extra,
    sunday_extra = excluded.sunday_extra,
    total_pay = excluded.total_pay
`

const selectShifts = `
SELECT s.id, s.date, s.start_time, s.end_time, s.salary_profile_id,
    c.id, c.salary_profile_id, c.duration_hours, c.evening_hours, c.weekend_hours, c.sunday_hours,
    c.base_pay, c.evening_extra, c.weekend_extra, c.sunday_extra, c.total_pay
FROM shifts s
LEFT JOIN shift_calculations c ON c.shift_id = s.id
`

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func (r *SqliteShiftRepo) CreateShift(shift model.Shift, calc model.ShiftCalculation) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, domain.Persistence("begin", err)
	}
	res, err := tx.Exec(
		`INSERT INTO shifts (date, start_time, end_time, salary_profile_id) VALUES (?, ?, ?, ?)`,
		shift.Date.Format(model.DateLayout),
		shift.StartTime.String(),
		shift.EndTime.String(),
		shift.SalaryProfileID,
	)
	if err != nil {
		return 0, rollback(tx, "insert shift", err)
	}
	id, err := res.LastInsertId()
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

func (r *SqliteShiftRepo) UpdateShift(shift model.Shift, calc model.ShiftCalculation) error {
	tx, err := r.db.Begin()
	if err != nil {
		return domain.Persistence("begin", err)
	}
	res, err := tx.Exec(
		`UPDATE shifts SET date = ?, start_time = ?, end_time = ?, salary_profile_id = ? WHERE id = ?`,
		shift.Date.Format(model.DateLayout),
		shift.StartTime.String(),
		shift.EndTime.String(),
		shift.SalaryProfileID,
		shift.ID,
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

func (r *SqliteShiftRepo) DeleteShift(id int64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return domain.Persistence("begin", err)
	}
	if _, err := tx.Exec(`DELETE FROM shift_calculations WHERE shift_id = ?`, id); err != nil {
		return rollback(tx, "delete shift calculation", err)
	}
	res, err := tx.Exec(`DELETE FROM shifts WHERE id = ?`, id)
	if err != nil {
		return rollback(tx, "delete shift", err)
	}
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		if err == nil {
			err = domain.ErrNotFound
		}
		return rollback(tx, "delete shift", err)
	}
	if err := tx.Commit(); err != nil {
		return domain.Persistence("commit delete", err)
	}
	return nil
}

func (r *SqliteShiftRepo) GetShift(id int64) (model.ShiftWithCalculation, error) {
	item, err := scanShift(r.db.QueryRow(selectShifts+` WHERE s.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return item, domain.ErrNotFound
	}
	if err != nil {
		return item, domain.Persistence("get shift", err)
	}
	return item, nil
}

func (r *SqliteShiftRepo) ListShifts(from, to time.Time) ([]model.ShiftWithCalculation, error) {
	rows, err := r.db.Query(
		selectShifts+` WHERE s.date BETWEEN ? AND ? ORDER BY s.date, s.start_time`,
		from.Format(model.DateLayout),
		to.Format(model.DateLayout),
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

func (r *SqliteShiftRepo) SaveCalculation(calc model.ShiftCalculation) error {
	if err := saveCalculation(r.db, calc); err != nil {
		return domain.Persistence("save shift calculation", err)
	}
	return nil
}

func saveCalculation(db execer, c model.ShiftCalculation) error {
	_, err := db.Exec(upsertCalculation,
		c.ShiftID,
		c.SalaryProfileID,
		c.DurationHours.String(),
		c.EveningHours.String(),
		c.WeekendHours.String(),
		c.SundayHours.String(),
		c.BasePay.String(),
		c.EveningExtra.String(),
		c.WeekendExtra.String(),
		c.SundayExtra.String(),
		c.TotalPay.String(),
	)
	return err
}

// rollback откатывает транзакцию и не теряет ошибку отката:
// если он не удался, смена могла остаться без расчёта.
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
		date       string
		start, end string
		calcID     sql.NullInt64
		profileID  sql.NullInt64
		nums       [9]decimal.NullDecimal
	)
	err := row.Scan(&item.ID, &date, &start, &end, &item.SalaryProfileID,
		&calcID, &profileID, &nums[0], &nums[1], &nums[2], &nums[3],
		&nums[4], &nums[5], &nums[6], &nums[7], &nums[8])
	if err != nil {
		return item, err
	}
	if item.Date, err = model.ParseDate(date); err != nil {
		return item, err
	}
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
