package utils

import (
	"testing"
	"time"

	"github.com/julianstephens/cortisol/internal/models"
)

func fixedClock(s string) Clock {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{"empty string returns local", "", false},
		{"Local returns local", "Local", false},
		{"UTC", "UTC", false},
		{"Europe/Paris", "Europe/Paris", false},
		{"invalid timezone", "Invalid/Timezone", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && loc == nil {
				t.Error("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestTodayIn(t *testing.T) {
	clock := fixedClock("2024-03-01T23:30:00Z")

	tests := []struct {
		timezone string
		want     string
	}{
		{"UTC", "2024-03-01"},
		{"Europe/Paris", "2024-03-02"},
		{"America/Los_Angeles", "2024-03-01"},
		{"Asia/Tokyo", "2024-03-02"},
	}

	for _, tt := range tests {
		t.Run(tt.timezone, func(t *testing.T) {
			got, err := TodayIn(clock, tt.timezone)
			if err != nil {
				t.Fatalf("TodayIn() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("TodayIn() = %s, want %s", got, tt.want)
			}
		})
	}

	if _, err := TodayIn(clock, "Nowhere/Special"); err == nil {
		t.Error("expected error for invalid timezone")
	}
}

func TestTodayFromSettings(t *testing.T) {
	got, err := TodayFromSettings(fixedClock("2024-12-31T20:00:00Z"), models.Settings{Timezone: "Asia/Tokyo"})
	if err != nil {
		t.Fatalf("TodayFromSettings() error = %v", err)
	}
	if got != "2025-01-01" {
		t.Errorf("TodayFromSettings() = %s, want 2025-01-01", got)
	}
}

func TestTodayIn_NilClockUsesSystem(t *testing.T) {
	got, err := TodayIn(nil, "UTC")
	if err != nil {
		t.Fatalf("TodayIn() error = %v", err)
	}
	if !ValidateDate(got) {
		t.Errorf("TodayIn() returned invalid date %q", got)
	}
}

func TestValidateDate(t *testing.T) {
	valid := []string{"2024-02-29", "2023-12-31"}
	invalid := []string{"", "2023-02-29", "2024-13-01", "01/02/2024", "2024-1-5"}

	for _, d := range valid {
		if !ValidateDate(d) {
			t.Errorf("ValidateDate(%q) = false, want true", d)
		}
	}
	for _, d := range invalid {
		if ValidateDate(d) {
			t.Errorf("ValidateDate(%q) = true, want false", d)
		}
	}
}

func TestFormatDisplayDate(t *testing.T) {
	if got := FormatDisplayDate("2024-03-01"); got != "Fri, Mar 1 2024" {
		t.Errorf("FormatDisplayDate() = %q", got)
	}
	if got := FormatDisplayDate("garbage"); got != "garbage" {
		t.Errorf("FormatDisplayDate() = %q, want input unchanged", got)
	}
}
