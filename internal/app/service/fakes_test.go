package service

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"shiftpay/internal/domain"
	"shiftpay/internal/model"
)

func rate(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type memoryProfileRepo struct {
	profiles []model.SalaryProfile
	nextID   int64
}

func (r *memoryProfileRepo) ListProfiles() ([]model.SalaryProfile, error) {
	return append([]model.SalaryProfile(nil), r.profiles...), nil
}

func (r *memoryProfileRepo) GetProfile(id int64) (model.SalaryProfile, error) {
	for _, p := range r.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return model.SalaryProfile{}, domain.ErrNotFound
}

func (r *memoryProfileRepo) CreateProfile(p model.SalaryProfile) (int64, error) {
	r.nextID++
	p.ID = r.nextID
	r.profiles = append(r.profiles, p)
	return p.ID, nil
}

func (r *memoryProfileRepo) UpdateProfile(p model.SalaryProfile) error {
	for i := range r.profiles {
		if r.profiles[i].ID == p.ID {
			r.profiles[i] = p
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memoryProfileRepo) DeleteProfile(id int64) error {
	for i := range r.profiles {
		if r.profiles[i].ID == id {
			r.profiles = append(r.profiles[:i], r.profiles[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type memoryShiftRepo struct {
	mu       sync.Mutex
	shifts   map[int64]model.Shift
	calcs    map[int64]model.ShiftCalculation
	nextID   int64
	failCalc bool
	writes   int
}

func newMemoryShiftRepo() *memoryShiftRepo {
	return &memoryShiftRepo{shifts: map[int64]model.Shift{}, calcs: map[int64]model.ShiftCalculation{}}
}

func (r *memoryShiftRepo) CreateShift(shift model.Shift, calc model.ShiftCalculation) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCalc {
		return 0, domain.Persistence("insert shift calculation", errors.New("connection reset"))
	}
	r.nextID++
	shift.ID = r.nextID
	calc.ShiftID = shift.ID
	r.shifts[shift.ID] = shift
	r.calcs[shift.ID] = calc
	r.writes++
	return shift.ID, nil
}

func (r *memoryShiftRepo) UpdateShift(shift model.Shift, calc model.ShiftCalculation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.shifts[shift.ID]; !ok {
		return domain.ErrNotFound
	}
	r.shifts[shift.ID] = shift
	r.calcs[shift.ID] = calc
	r.writes++
	return nil
}

func (r *memoryShiftRepo) DeleteShift(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.shifts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.shifts, id)
	delete(r.calcs, id)
	return nil
}

func (r *memoryShiftRepo) GetShift(id int64) (model.ShiftWithCalculation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shifts[id]
	if !ok {
		return model.ShiftWithCalculation{}, domain.ErrNotFound
	}
	return r.withCalc(s), nil
}

func (r *memoryShiftRepo) ListShifts(from, to time.Time) ([]model.ShiftWithCalculation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []model.ShiftWithCalculation
	for _, s := range r.shifts {
		if s.Date.Before(model.DateOnly(from)) || s.Date.After(model.DateOnly(to)) {
			continue
		}
		items = append(items, r.withCalc(s))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *memoryShiftRepo) SaveCalculation(calc model.ShiftCalculation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calcs[calc.ShiftID] = calc
	r.writes++
	return nil
}

func (r *memoryShiftRepo) withCalc(s model.Shift) model.ShiftWithCalculation {
	item := model.ShiftWithCalculation{Shift: s}
	if c, ok := r.calcs[s.ID]; ok {
		item.Calculation = &c
	}
	return item
}
