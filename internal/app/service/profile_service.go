package service

import (
	"fmt"
	"log"
	"time"

	"shiftpay/internal/domain"
	"shiftpay/internal/model"
	"shiftpay/internal/pay"
)

const (
	defaultEveningStart = "18:00"
	defaultWeekendStart = "13:00"
)

type ProfileService struct {
	Repo domain.ProfileRepo
}

func NewProfileService(repo domain.ProfileRepo) *ProfileService {
	return &ProfileService{Repo: repo}
}

func (s *ProfileService) ListProfiles() ([]model.SalaryProfile, error) {
	return s.Repo.ListProfiles()
}

func (s *ProfileService) GetProfile(id int64) (model.SalaryProfile, error) {
	return s.Repo.GetProfile(id)
}

func (s *ProfileService) AddProfile(in domain.ProfileInput) (model.SalaryProfile, error) {
	p, err := ProfileFromInput(in)
	if err != nil {
		return model.SalaryProfile{}, err
	}
	id, err := s.Repo.CreateProfile(p)
	if err != nil {
		return model.SalaryProfile{}, err
	}
	p.ID = id
	log.Printf("[profile] added id=%d from=%s base=%s", id, p.StartDate.Format(model.DateLayout), p.BaseHourlyRate)
	return p, nil
}

// UpdateProfile не пересчитывает уже сохранённые смены.
func (s *ProfileService) UpdateProfile(id int64, in domain.ProfileInput) (model.SalaryProfile, error) {
	p, err := ProfileFromInput(in)
	if err != nil {
		return model.SalaryProfile{}, err
	}
	p.ID = id
	if err := s.Repo.UpdateProfile(p); err != nil {
		return model.SalaryProfile{}, err
	}
	log.Printf("[profile] updated id=%d", id)
	return p, nil
}

func (s *ProfileService) DeleteProfile(id int64) error {
	if err := s.Repo.DeleteProfile(id); err != nil {
		return err
	}
	log.Printf("[profile] deleted id=%d", id)
	return nil
}

// ProfileForDate возвращает профиль, действующий в день date, или ErrNoApplicableProfile.
func (s *ProfileService) ProfileForDate(date time.Time) (model.SalaryProfile, error) {
	profiles, err := s.Repo.ListProfiles()
	if err != nil {
		return model.SalaryProfile{}, err
	}
	p, ok := pay.ResolveProfile(profiles, date)
	if !ok {
		return model.SalaryProfile{}, fmt.Errorf("%s: %w", date.Format(model.DateLayout), domain.ErrNoApplicableProfile)
	}
	return p, nil
}

// ProfileFromInput проверяет ввод и подставляет значения по умолчанию из настроек:
// вечер с 18:00, суббота с 13:00, имя "Rate from <дата>".
func ProfileFromInput(in domain.ProfileInput) (model.SalaryProfile, error) {
	if in.EveningStartTime != "" {
		in.EveningStartTime = normalizeClock(in.EveningStartTime)
	}
	if in.WeekendExtraStartTime != "" {
		in.WeekendExtraStartTime = normalizeClock(in.WeekendExtraStartTime)
	}
	if err := validateInput(in); err != nil {
		return model.SalaryProfile{}, err
	}
	if in.EveningStartTime == "" {
		in.EveningStartTime = defaultEveningStart
	}
	if in.WeekendExtraStartTime == "" {
		in.WeekendExtraStartTime = defaultWeekendStart
	}

	p := model.SalaryProfile{
		Name:           in.Name,
		BaseHourlyRate: in.BaseHourlyRate,
		EveningExtra:   in.EveningExtra,
		WeekendExtra:   in.WeekendExtra,
		SundayExtra:    in.SundayExtra,
	}
	var err error
	if p.EveningStartTime, err = model.ParseClock(in.EveningStartTime); err != nil {
		return p, &domain.ValidationError{Field: "EveningStartTime", Message: err.Error()}
	}
	if p.WeekendExtraStartTime, err = model.ParseClock(in.WeekendExtraStartTime); err != nil {
		return p, &domain.ValidationError{Field: "WeekendExtraStartTime", Message: err.Error()}
	}
	if p.StartDate, err = model.ParseDate(in.StartDate); err != nil {
		return p, &domain.ValidationError{Field: "StartDate", Message: err.Error()}
	}
	if in.EndDate != "" {
		end, err := model.ParseDate(in.EndDate)
		if err != nil {
			return p, &domain.ValidationError{Field: "EndDate", Message: err.Error()}
		}
		if end.Before(p.StartDate) {
			return p, &domain.ValidationError{Field: "EndDate", Message: "must not be before StartDate"}
		}
		p.EndDate = &end
	}
	if p.Name == "" {
		p.Name = "Rate from " + in.StartDate
	}
	return p, nil
}
