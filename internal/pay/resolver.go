package pay

import (
	"time"

	"shiftpay/internal/model"
)

// ResolveProfile выбирает профиль, действующий в день date: среди профилей,
// период которых покрывает date, побеждает тот, что начался позже всех.
// Если таких нет, второй результат false и считать смену нельзя.
//
// Даты начала профилей должны быть уникальны. При совпадении выигрывает
// первый по порядку в profiles, но полагаться на это не стоит.
func ResolveProfile(profiles []model.SalaryProfile, date time.Time) (model.SalaryProfile, bool) {
	var (
		best  model.SalaryProfile
		found bool
	)
	for _, p := range profiles {
		if !p.ActiveOn(date) {
			continue
		}
		if !found || model.DateOnly(p.StartDate).After(model.DateOnly(best.StartDate)) {
			best = p
			found = true
		}
	}
	return best, found
}
