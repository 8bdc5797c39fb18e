package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"shiftpay/internal/domain"
	"shiftpay/internal/model"
	"shiftpay/internal/pay"
	"shiftpay/pkg/workerpool"
)

type ShiftServiceImpl struct {
	Repo     domain.ShiftRepo
	Profiles *ProfileService
	// Location: пояс, в котором дата и время смены превращаются в моменты времени.
	Location *time.Location
	Pool     *workerpool.WorkerPool
}

var _ domain.ShiftService = (*ShiftServiceImpl)(nil)

func (s *ShiftServiceImpl) location() *time.Location {
	if s.Location == nil {
		return time.Local
	}
	return s.Location
}

// prepare разбирает ввод, находит профиль на дату смены и считает разбивку.
// Ничего не пишет в хранилище.
func (s *ShiftServiceImpl) prepare(in domain.ShiftInput) (model.Shift, model.SalaryProfile, pay.Breakdown, error) {
	shift, err := ShiftFromInput(in)
	if err != nil {
		return shift, model.SalaryProfile{}, pay.Breakdown{}, err
	}
	profile, err := s.Profiles.ProfileForDate(shift.Date)
	if err != nil {
		return shift, profile, pay.Breakdown{}, err
	}
	start, end := shift.Interval(s.location())
	b, err := pay.Decompose(start, end, profile)
	if err != nil {
		return shift, profile, b, err
	}
	shift.SalaryProfileID = profile.ID
	return shift, profile, b, nil
}

func (s *ShiftServiceImpl) AddShift(in domain.ShiftInput) (model.ShiftWithCalculation, error) {
	shift, profile, b, err := s.prepare(in)
	if err != nil {
		return model.ShiftWithCalculation{}, err
	}
	calc := b.Calculation(0, profile.ID)
	id, err := s.Repo.CreateShift(shift, calc)
	if err != nil {
		return model.ShiftWithCalculation{}, err
	}
	shift.ID = id
	calc.ShiftID = id
	log.Printf("[shift] added id=%d date=%s %s-%s total=%s",
		id, shift.Date.Format(model.DateLayout), shift.StartTime, shift.EndTime, calc.TotalPay.StringFixed(2))
	return model.ShiftWithCalculation{Shift: shift, Calculation: &calc}, nil
}

// UpdateShift полностью пересчитывает смену, заново выбирая профиль на новую дату.
func (s *ShiftServiceImpl) UpdateShift(id int64, in domain.ShiftInput) (model.ShiftWithCalculation, error) {
	shift, profile, b, err := s.prepare(in)
	if err != nil {
		return model.ShiftWithCalculation{}, err
	}
	shift.ID = id
	calc := b.Calculation(id, profile.ID)
	if err := s.Repo.UpdateShift(shift, calc); err != nil {
		return model.ShiftWithCalculation{}, err
	}
	log.Printf("[shift] updated id=%d total=%s", id, calc.TotalPay.StringFixed(2))
	return model.ShiftWithCalculation{Shift: shift, Calculation: &calc}, nil
}

func (s *ShiftServiceImpl) DeleteShift(id int64) error {
	if err := s.Repo.DeleteShift(id); err != nil {
		return err
	}
	log.Printf("[shift] deleted id=%d", id)
	return nil
}

func (s *ShiftServiceImpl) GetShift(id int64) (model.ShiftWithCalculation, error) {
	return s.Repo.GetShift(id)
}

func (s *ShiftServiceImpl) ListShifts(from, to time.Time) ([]model.ShiftWithCalculation, error) {
	return s.Repo.ListShifts(from, to)
}

// PreviewShift: предварительный расчёт для формы ввода, без сохранения.
func (s *ShiftServiceImpl) PreviewShift(in domain.ShiftInput) (pay.Estimate, model.SalaryProfile, error) {
	shift, err := ShiftFromInput(in)
	if err != nil {
		return pay.Estimate{}, model.SalaryProfile{}, err
	}
	profile, err := s.Profiles.ProfileForDate(shift.Date)
	if err != nil {
		return pay.Estimate{}, profile, err
	}
	start, end := shift.Interval(s.location())
	e, err := pay.Preview(start, end, profile)
	return e, profile, err
}

func (s *ShiftServiceImpl) MonthlyStats(year int, month time.Month) (pay.Summary, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	items, err := s.Repo.ListShifts(from, to)
	if err != nil {
		return pay.Summary{}, err
	}
	return pay.Summarize(items), nil
}

func (s *ShiftServiceImpl) YearlyTotals(year int) ([12]decimal.Decimal, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	items, err := s.Repo.ListShifts(from, to)
	if err != nil {
		return [12]decimal.Decimal{}, err
	}
	return pay.MonthlyTotals(items, year), nil
}

// RecalcReport: итог пересчёта за период.
type RecalcReport struct {
	Updated int
	Skipped []int64 // смены без подходящего профиля или с некорректным интервалом
}

// Recalculate пересчитывает сохранённые расчёты смен за период по текущим профилям.
// Вызывается только явно: редактирование профиля сам по себе историю не трогает.
// Разбивки считаются в пуле, запись идёт последовательно.
func (s *ShiftServiceImpl) Recalculate(from, to time.Time) (RecalcReport, error) {
	var report RecalcReport
	if s.Pool == nil {
		return report, errors.New("recalculate: worker pool is not configured")
	}
	items, err := s.Repo.ListShifts(from, to)
	if err != nil {
		return report, err
	}
	profiles, err := s.Profiles.ListProfiles()
	if err != nil {
		return report, err
	}

	type job struct {
		shiftID int64
		calc    model.ShiftCalculation
	}
	resCh := make(chan workerpool.Result, len(items))
	loc := s.location()
	for _, it := range items {
		shift := it.Shift
		err := s.Pool.Submit(workerpool.Task{
			ResultC: resCh,
			Fn: func() (any, error) {
				profile, ok := pay.ResolveProfile(profiles, shift.Date)
				if !ok {
					return job{shiftID: shift.ID}, domain.ErrNoApplicableProfile
				}
				start, end := shift.Interval(loc)
				b, err := pay.Decompose(start, end, profile)
				if err != nil {
					return job{shiftID: shift.ID}, err
				}
				return job{shiftID: shift.ID, calc: b.Calculation(shift.ID, profile.ID)}, nil
			},
		})
		if err != nil {
			return report, fmt.Errorf("recalculate: %w", err)
		}
	}

	for range items {
		res := <-resCh
		j, _ := res.Value.(job)
		if res.Err != nil {
			log.Printf("[recalc] skip shift id=%d: %v", j.shiftID, res.Err)
			report.Skipped = append(report.Skipped, j.shiftID)
			continue
		}
		if err := s.Repo.SaveCalculation(j.calc); err != nil {
			return report, err
		}
		report.Updated++
	}
	log.Printf("[recalc] %s..%s updated=%d skipped=%d",
		from.Format(model.DateLayout), to.Format(model.DateLayout), report.Updated, len(report.Skipped))
	return report, nil
}

// ShiftFromInput проверяет формат ввода. Профиль и расчёт не трогает.
func ShiftFromInput(in domain.ShiftInput) (model.Shift, error) {
	in.StartTime = normalizeClock(in.StartTime)
	in.EndTime = normalizeClock(in.EndTime)
	if err := validateInput(in); err != nil {
		return model.Shift{}, err
	}
	var (
		shift model.Shift
		err   error
	)
	if shift.Date, err = model.ParseDate(in.Date); err != nil {
		return shift, &domain.ValidationError{Field: "Date", Message: err.Error()}
	}
	if shift.StartTime, err = model.ParseClock(in.StartTime); err != nil {
		return shift, &domain.ValidationError{Field: "StartTime", Message: err.Error()}
	}
	if shift.EndTime, err = model.ParseClock(in.EndTime); err != nil {
		return shift, &domain.ValidationError{Field: "EndTime", Message: err.Error()}
	}
	if !shift.StartTime.Before(shift.EndTime) {
		return shift, domain.ErrInvalidInterval
	}
	return shift, nil
}
