package date

import (
	"testing"
	"time"
)

func TestStartOf(t *testing.T) {
	// A Wednesday.
	d := New(2025, time.August, 13)
	tests := []struct {
		p     Period
		start Date
	}{
		{Daily, d},
		{Weekly, New(2025, 8, 11)},
		{Monthly, New(2025, 8, 1)},
		{Quarterly, New(2025, 7, 1)},
		{Yearly, New(2025, 1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.p.String(), func(t *testing.T) {
			if got := d.StartOf(tt.p); got != tt.start {
				t.Errorf("StartOf(%v) = %v, want %v", tt.p, got, tt.start)
			}
		})
	}
}

func TestStartOfWeekOnSunday(t *testing.T) {
	sunday := New(2025, time.September, 14)
	if got, want := sunday.StartOf(Weekly), New(2025, time.September, 8); got != want {
		t.Errorf("StartOf(Weekly) = %v, want %v", got, want)
	}
}

func TestIdentifier(t *testing.T) {
	d := New(2025, time.September, 10)
	tests := []struct {
		p    Period
		want string
	}{
		{Daily, "2025-09-10"},
		{Weekly, "2025-W37"},
		{Monthly, "2025-09"},
		{Quarterly, "2025-Q3"},
		{Yearly, "2025"},
	}
	for _, tt := range tests {
		if got := tt.p.Identifier(d); got != tt.want {
			t.Errorf("%v.Identifier() = %q, want %q", tt.p, got, tt.want)
		}
	}
}
