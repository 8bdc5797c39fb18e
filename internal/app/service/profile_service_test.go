package service

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"shiftpay/internal/domain"
	"shiftpay/internal/model"
)

func TestProfileFromInputDefaults(t *testing.T) {
	p, err := ProfileFromInput(domain.ProfileInput{
		BaseHourlyRate: rate("20"),
		EveningExtra:   rate("4.18"),
		WeekendExtra:   rate("5.46"),
		SundayExtra:    rate("20"),
		StartDate:      "2024-01-01",
	})
	if err != nil {
		t.Fatalf("ProfileFromInput() error: %v", err)
	}
	if p.EveningStartTime != model.MustClock("18:00") || p.WeekendExtraStartTime != model.MustClock("13:00") {
		t.Errorf("default thresholds = %s / %s", p.EveningStartTime, p.WeekendExtraStartTime)
	}
	if p.Name != "Rate from 2024-01-01" {
		t.Errorf("Name = %q", p.Name)
	}
	if !p.EveningExtra.Equal(decimal.RequireFromString("4.18")) {
		t.Errorf("EveningExtra = %s", p.EveningExtra)
	}
	if p.EndDate != nil {
		t.Errorf("EndDate = %v, want nil", p.EndDate)
	}
}

func TestProfileFromInputValidation(t *testing.T) {
	tests := []struct {
		name  string
		input domain.ProfileInput
		field string
	}{
		{"negative base rate", domain.ProfileInput{BaseHourlyRate: rate("-1"), StartDate: "2024-01-01"}, "BaseHourlyRate"},
		{"negative evening extra", domain.ProfileInput{EveningExtra: rate("-0.5"), StartDate: "2024-01-01"}, "EveningExtra"},
		{"missing start date", domain.ProfileInput{BaseHourlyRate: rate("20")}, "StartDate"},
		{"bad start date", domain.ProfileInput{StartDate: "01.01.2024"}, "StartDate"},
		{"bad evening clock", domain.ProfileInput{StartDate: "2024-01-01", EveningStartTime: "6pm"}, "EveningStartTime"},
		{"end before start", domain.ProfileInput{StartDate: "2024-02-01", EndDate: "2024-01-31"}, "EndDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ProfileFromInput(tt.input)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("ProfileFromInput() error = %v, want ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Errorf("ValidationError.Field = %q, want %q", ve.Field, tt.field)
			}
		})
	}
}

func TestProfileServiceCRUDAndResolution(t *testing.T) {
	svc := NewProfileService(&memoryProfileRepo{})

	old, err := svc.AddProfile(domain.ProfileInput{BaseHourlyRate: rate("18"), StartDate: "2023-01-01", EndDate: "2023-12-31"})
	if err != nil {
		t.Fatal(err)
	}
	cur, err := svc.AddProfile(domain.ProfileInput{BaseHourlyRate: rate("20"), StartDate: "2024-01-01"})
	if err != nil {
		t.Fatal(err)
	}

	p, err := svc.ProfileForDate(time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC))
	if err != nil || p.ID != old.ID {
		t.Errorf("ProfileForDate(2023-07-01) = %d, %v; want %d", p.ID, err, old.ID)
	}
	p, err = svc.ProfileForDate(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))
	if err != nil || p.ID != cur.ID {
		t.Errorf("ProfileForDate(2025-07-01) = %d, %v; want %d", p.ID, err, cur.ID)
	}
	if _, err := svc.ProfileForDate(time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)); !errors.Is(err, domain.ErrNoApplicableProfile) {
		t.Errorf("ProfileForDate(2022-01-01) error = %v, want ErrNoApplicableProfile", err)
	}

	updated, err := svc.UpdateProfile(cur.ID, domain.ProfileInput{BaseHourlyRate: rate("21"), StartDate: "2024-01-01"})
	if err != nil {
		t.Fatalf("UpdateProfile() error: %v", err)
	}
	got, _ := svc.GetProfile(cur.ID)
	if !got.BaseHourlyRate.Equal(updated.BaseHourlyRate) {
		t.Errorf("GetProfile() base = %s, want %s", got.BaseHourlyRate, updated.BaseHourlyRate)
	}

	if err := svc.DeleteProfile(old.ID); err != nil {
		t.Fatalf("DeleteProfile() error: %v", err)
	}
	if _, err := svc.ProfileForDate(time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)); !errors.Is(err, domain.ErrNoApplicableProfile) {
		t.Errorf("after delete error = %v, want ErrNoApplicableProfile", err)
	}
	list, _ := svc.ListProfiles()
	if len(list) != 1 {
		t.Errorf("ListProfiles() len = %d, want 1", len(list))
	}
}

func TestParseRate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"dot", "4.18", "4.18", false},
		{"comma", "4,18", "4.18", false},
		{"spaces", " 20 ", "20", false},
		{"infinity", "inf", "", true},
		{"signed infinity", "+Inf", "", true},
		{"not a number", "NaN", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRate("BaseHourlyRate", tt.in)
			if tt.wantErr {
				var ve *domain.ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("ParseRate(%q) error = %v, want ValidationError", tt.in, err)
				}
				if ve.Field != "BaseHourlyRate" {
					t.Errorf("ValidationError.Field = %q", ve.Field)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRate(%q) error: %v", tt.in, err)
			}
			if !got.Equal(rate(tt.want)) {
				t.Errorf("ParseRate(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestProfileFromInputKeepsExactRates(t *testing.T) {
	p, err := ProfileFromInput(domain.ProfileInput{
		BaseHourlyRate:   rate("20.123456789012345678"),
		EveningStartTime: "18:30:00",
		StartDate:        "2024-01-01",
	})
	if err != nil {
		t.Fatalf("ProfileFromInput() error: %v", err)
	}
	if p.BaseHourlyRate.String() != "20.123456789012345678" {
		t.Errorf("BaseHourlyRate = %s", p.BaseHourlyRate)
	}
	if p.EveningStartTime != model.MustClock("18:30") {
		t.Errorf("EveningStartTime = %s, want 18:30", p.EveningStartTime)
	}
}
