package sqlite

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"shiftpay/internal/domain"
	"shiftpay/internal/model"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error: %v", err)
	}
	return db
}

func date(s string) time.Time {
	d, _ := model.ParseDate(s)
	return d
}

func testCalc(total string) model.ShiftCalculation {
	return model.ShiftCalculation{
		SalaryProfileID: 1,
		DurationHours:   decimal.RequireFromString("5"),
		EveningHours:    decimal.RequireFromString("1"),
		WeekendHours:    decimal.Zero,
		SundayHours:     decimal.Zero,
		BasePay:         decimal.RequireFromString("100"),
		EveningExtra:    decimal.RequireFromString("4.18"),
		WeekendExtra:    decimal.Zero,
		SundayExtra:     decimal.Zero,
		TotalPay:        decimal.RequireFromString(total),
	}
}

func TestProfileRepoRoundTrip(t *testing.T) {
	repo := NewSqliteProfileRepo(openTestDB(t))

	end := date("2024-12-31")
	p := model.SalaryProfile{
		Name:                  "Rate from 2024-01-01",
		BaseHourlyRate:        decimal.RequireFromString("20.55"),
		EveningExtra:          decimal.RequireFromString("4.18"),
		EveningStartTime:      model.MustClock("18:00"),
		WeekendExtra:          decimal.RequireFromString("5.46"),
		WeekendExtraStartTime: model.MustClock("13:00"),
		SundayExtra:           decimal.RequireFromString("20.55"),
		StartDate:             date("2024-01-01"),
		EndDate:               &end,
	}
	id, err := repo.CreateProfile(p)
	if err != nil {
		t.Fatalf("CreateProfile() error: %v", err)
	}
	if _, err := repo.CreateProfile(model.SalaryProfile{StartDate: date("2025-01-01")}); err != nil {
		t.Fatalf("CreateProfile() error: %v", err)
	}

	got, err := repo.GetProfile(id)
	if err != nil {
		t.Fatalf("GetProfile() error: %v", err)
	}
	if !got.BaseHourlyRate.Equal(p.BaseHourlyRate) || got.EveningStartTime != p.EveningStartTime {
		t.Errorf("GetProfile() = %+v", got)
	}
	if got.EndDate == nil || !got.EndDate.Equal(end) {
		t.Errorf("EndDate = %v, want %v", got.EndDate, end)
	}

	list, err := repo.ListProfiles()
	if err != nil {
		t.Fatalf("ListProfiles() error: %v", err)
	}
	if len(list) != 2 || list[0].EndDate != nil {
		t.Fatalf("ListProfiles() = %+v, want newest open-ended profile first", list)
	}

	got.EndDate = nil
	got.BaseHourlyRate = decimal.RequireFromString("22")
	if err := repo.UpdateProfile(got); err != nil {
		t.Fatalf("UpdateProfile() error: %v", err)
	}
	got, _ = repo.GetProfile(id)
	if got.EndDate != nil || !got.BaseHourlyRate.Equal(decimal.NewFromInt(22)) {
		t.Errorf("after update = %+v", got)
	}

	if err := repo.DeleteProfile(id); err != nil {
		t.Fatalf("DeleteProfile() error: %v", err)
	}
	if _, err := repo.GetProfile(id); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetProfile() after delete error = %v, want ErrNotFound", err)
	}
	if err := repo.DeleteProfile(id); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("DeleteProfile() twice error = %v, want ErrNotFound", err)
	}
}

func TestShiftRepoLifecycle(t *testing.T) {
	repo := NewSqliteShiftRepo(openTestDB(t))

	shift := model.Shift{
		Date:            date("2024-01-02"),
		StartTime:       model.MustClock("14:00"),
		EndTime:         model.MustClock("19:00"),
		SalaryProfileID: 1,
	}
	id, err := repo.CreateShift(shift, testCalc("104.18"))
	if err != nil {
		t.Fatalf("CreateShift() error: %v", err)
	}

	got, err := repo.GetShift(id)
	if err != nil {
		t.Fatalf("GetShift() error: %v", err)
	}
	if got.Calculation == nil || got.Calculation.ShiftID != id {
		t.Fatalf("GetShift() calculation = %+v", got.Calculation)
	}
	if !got.Calculation.TotalPay.Equal(decimal.RequireFromString("104.18")) {
		t.Errorf("TotalPay = %s, want 104.18", got.Calculation.TotalPay)
	}
	if got.StartTime != shift.StartTime || !got.Date.Equal(shift.Date) {
		t.Errorf("GetShift() = %+v", got.Shift)
	}

	shift.ID = id
	shift.EndTime = model.MustClock("20:00")
	if err := repo.UpdateShift(shift, testCalc("128.36")); err != nil {
		t.Fatalf("UpdateShift() error: %v", err)
	}
	got, _ = repo.GetShift(id)
	if got.EndTime != shift.EndTime || !got.Calculation.TotalPay.Equal(decimal.RequireFromString("128.36")) {
		t.Errorf("after update = %+v / %+v", got.Shift, got.Calculation)
	}

	list, err := repo.ListShifts(date("2024-01-01"), date("2024-01-31"))
	if err != nil {
		t.Fatalf("ListShifts() error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("ListShifts() len = %d, want 1", len(list))
	}
	if list, _ := repo.ListShifts(date("2024-02-01"), date("2024-02-29")); len(list) != 0 {
		t.Errorf("ListShifts() outside range len = %d, want 0", len(list))
	}

	if err := repo.DeleteShift(id); err != nil {
		t.Fatalf("DeleteShift() error: %v", err)
	}
	if _, err := repo.GetShift(id); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetShift() after delete error = %v, want ErrNotFound", err)
	}
	if err := repo.DeleteShift(id); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("DeleteShift() twice error = %v, want ErrNotFound", err)
	}
	if err := repo.UpdateShift(shift, testCalc("1")); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("UpdateShift() missing error = %v, want ErrNotFound", err)
	}
}

func TestShiftWithoutCalculation(t *testing.T) {
	db := openTestDB(t)
	repo := NewSqliteShiftRepo(db)
	if _, err := db.Exec(`INSERT INTO shifts (date, start_time, end_time, salary_profile_id) VALUES ('2024-01-03', '09:00', '12:00', 1)`); err != nil {
		t.Fatal(err)
	}
	list, err := repo.ListShifts(date("2024-01-01"), date("2024-01-31"))
	if err != nil {
		t.Fatalf("ListShifts() error: %v", err)
	}
	if len(list) != 1 || list[0].Calculation != nil {
		t.Fatalf("ListShifts() = %+v, want one shift without calculation", list)
	}

	calc := testCalc("60")
	calc.ShiftID = list[0].ID
	if err := repo.SaveCalculation(calc); err != nil {
		t.Fatalf("SaveCalculation() error: %v", err)
	}
	got, _ := repo.GetShift(list[0].ID)
	if got.Calculation == nil || !got.Calculation.TotalPay.Equal(decimal.NewFromInt(60)) {
		t.Errorf("GetShift() calculation = %+v", got.Calculation)
	}
}

func TestCreateShiftRollsBackOnCalculationFailure(t *testing.T) {
	db := openTestDB(t)
	repo := NewSqliteShiftRepo(db)
	if _, err := db.Exec(`DROP TABLE shift_calculations`); err != nil {
		t.Fatal(err)
	}

	_, err := repo.CreateShift(model.Shift{
		Date:      date("2024-01-02"),
		StartTime: model.MustClock("09:00"),
		EndTime:   model.MustClock("10:00"),
	}, testCalc("20"))

	var pe *domain.PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("CreateShift() error = %v, want PersistenceError", err)
	}
	if pe.Op != "insert shift calculation" {
		t.Errorf("PersistenceError.Op = %q", pe.Op)
	}

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM shifts`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("shifts count = %d, want 0 after rollback", n)
	}
}
