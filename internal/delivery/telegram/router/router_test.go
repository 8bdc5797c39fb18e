package router

import "testing"

func TestSplit(t *testing.T) {
	tests := []struct {
		name        string
		data        string
		wantKey     string
		wantPayload string
	}{
		{"unique with payload", "\fpick_month|2024-01", "pick_month", "2024-01"},
		{"unique without payload", "\fstats_current", "stats_current", ""},
		{"plain data", "shift_del|42", "shift_del", "42"},
		{"payload keeps pipes", "\fx|a|b", "x", "a|b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, payload := Split(tt.data)
			if key != tt.wantKey || payload != tt.wantPayload {
				t.Errorf("Split(%q) = %q, %q; want %q, %q", tt.data, key, payload, tt.wantKey, tt.wantPayload)
			}
		})
	}
}
