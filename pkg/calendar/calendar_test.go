package calendar

import (
	"strings"
	"testing"
	"time"
)

func TestMarkupLayout(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		month    time.Month
		offset   int
		days     int
		prev     string
		next     string
		titleHas string
	}{
		{"january starts on monday", 2024, time.January, 0, 31, "2023-12", "2024-02", "Январь 2024"},
		{"leap february starts on thursday", 2024, time.February, 3, 29, "2024-01", "2024-03", "Февраль 2024"},
		{"september starts on sunday", 2024, time.September, 6, 30, "2024-08", "2024-10", "Сентябрь 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, markup := Markup(tt.year, tt.month)
			if !strings.Contains(title, tt.titleHas) {
				t.Errorf("title = %q, want it to contain %q", title, tt.titleHas)
			}
			rows := markup.InlineKeyboard
			days := 0
			blanks := 0
			for _, row := range rows[:len(rows)-1] {
				if len(row) != 7 {
					t.Fatalf("week row has %d buttons, want 7", len(row))
				}
				for _, b := range row {
					if b.Unique == KeyDay {
						days++
					} else if days == 0 {
						blanks++
					}
				}
			}
			if days != tt.days {
				t.Errorf("days = %d, want %d", days, tt.days)
			}
			if blanks != tt.offset {
				t.Errorf("leading blanks = %d, want %d", blanks, tt.offset)
			}
			nav := rows[len(rows)-1]
			if nav[0].Data != tt.prev || nav[1].Data != tt.next {
				t.Errorf("nav = %q/%q, want %q/%q", nav[0].Data, nav[1].Data, tt.prev, tt.next)
			}
		})
	}
}

func TestParsePayloads(t *testing.T) {
	d, err := ParseDay("2024-01-07")
	if err != nil || !d.Equal(time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseDay() = %v, %v", d, err)
	}
	if _, err := ParseDay("7-1-2024x"); err == nil {
		t.Error("ParseDay() accepted garbage")
	}
	y, m, err := ParseMonth("2023-12")
	if err != nil || y != 2023 || m != time.December {
		t.Errorf("ParseMonth() = %d %v %v", y, m, err)
	}
	if _, _, err := ParseMonth("2023"); err == nil {
		t.Error("ParseMonth() accepted a bare year")
	}
}
