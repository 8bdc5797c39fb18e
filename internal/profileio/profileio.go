// Package profileio читает и пишет профили ставок в YAML.
package profileio

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"shiftpay/internal/domain"
	"shiftpay/internal/model"
)

type file struct {
	Profiles []domain.ProfileInput `yaml:"profiles"`
}

// Read разбирает файл профилей. Проверка значений остаётся за ProfileService.
func Read(r io.Reader) ([]domain.ProfileInput, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}
	return f.Profiles, nil
}

func Write(w io.Writer, profiles []model.SalaryProfile) error {
	f := file{Profiles: make([]domain.ProfileInput, 0, len(profiles))}
	for _, p := range profiles {
		f.Profiles = append(f.Profiles, ToInput(p))
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ToInput переводит сохранённый профиль обратно во входной формат.
func ToInput(p model.SalaryProfile) domain.ProfileInput {
	in := domain.ProfileInput{
		Name:                  p.Name,
		BaseHourlyRate:        p.BaseHourlyRate,
		EveningExtra:          p.EveningExtra,
		EveningStartTime:      p.EveningStartTime.String(),
		WeekendExtra:          p.WeekendExtra,
		WeekendExtraStartTime: p.WeekendExtraStartTime.String(),
		SundayExtra:           p.SundayExtra,
		StartDate:             p.StartDate.Format(model.DateLayout),
	}
	if p.EndDate != nil {
		in.EndDate = p.EndDate.Format(model.DateLayout)
	}
	return in
}
