package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"shiftpay/internal/model"
)

func TestWriteMonthlyReport(t *testing.T) {
	tue := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	sun := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
	items := []model.ShiftWithCalculation{
		{
			Shift: model.Shift{ID: 1, Date: tue, StartTime: model.MustClock("14:00"), EndTime: model.MustClock("19:00")},
			Calculation: &model.ShiftCalculation{
				DurationHours: decimal.NewFromInt(5),
				EveningHours:  decimal.NewFromInt(1),
				BasePay:       decimal.NewFromInt(100),
				EveningExtra:  decimal.RequireFromString("4.18"),
				TotalPay:      decimal.RequireFromString("104.18"),
			},
		},
		{
			Shift: model.Shift{ID: 2, Date: sun, StartTime: model.MustClock("10:00"), EndTime: model.MustClock("12:00")},
		},
	}

	var buf bytes.Buffer
	if err := WriteMonthlyReport(&buf, tue, items); err != nil {
		t.Fatalf("WriteMonthlyReport() error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader() error: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(ShiftsSheet)
	if err != nil {
		t.Fatalf("GetRows(%s) error: %v", ShiftsSheet, err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3 (header + 2 shifts)", len(rows))
	}
	if rows[1][0] != "2024-01-02" || rows[1][2] != "14:00" {
		t.Errorf("first shift row = %v", rows[1])
	}
	if got := rows[1][len(rows[1])-1]; got != "104.18" {
		t.Errorf("first shift total = %q, want 104.18", got)
	}
	if len(rows[2]) != 4 {
		t.Errorf("shift without calculation has %d cells, want 4", len(rows[2]))
	}

	summary, err := f.GetRows(SummarySheet)
	if err != nil {
		t.Fatalf("GetRows(%s) error: %v", SummarySheet, err)
	}
	want := map[string]string{
		"Month":  "2024-01",
		"Shifts": "2",
		"Total":  "104.18",
		"Sunday": "1",
		"Monday": "0",
	}
	got := make(map[string]string)
	for _, r := range summary {
		if len(r) == 2 {
			got[r[0]] = r[1]
		}
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("summary[%s] = %q, want %q", k, got[k], v)
		}
	}
}
