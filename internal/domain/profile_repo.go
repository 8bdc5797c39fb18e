package domain

import "shiftpay/internal/model"

type ProfileRepo interface {
	ListProfiles() ([]model.SalaryProfile, error)
	GetProfile(id int64) (model.SalaryProfile, error)
	CreateProfile(p model.SalaryProfile) (int64, error)
	UpdateProfile(p model.SalaryProfile) error
	DeleteProfile(id int64) error
}
