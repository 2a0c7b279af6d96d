package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/cortisol/internal/constants"
	"github.com/julianstephens/cortisol/internal/models"
)

// Clock returns the current instant. Tests substitute a fixed one.
type Clock func() time.Time

// SystemClock is the wall clock
var SystemClock Clock = time.Now

// LoadLocation loads an IANA timezone. "Local" or empty means the system zone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == constants.DefaultTimezone {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// TodayIn returns the calendar date (YYYY-MM-DD) of clock's instant in timezone
func TodayIn(clock Clock, timezone string) (string, error) {
	if clock == nil {
		clock = SystemClock
	}
	loc, err := LoadLocation(timezone)
	if err != nil {
		return "", fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return clock().In(loc).Format(constants.DateFormat), nil
}

// TodayFromSettings returns today's date in the configured timezone
func TodayFromSettings(clock Clock, settings models.Settings) (string, error) {
	return TodayIn(clock, settings.Timezone)
}

// ValidateTimezone checks if the timezone name is valid
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}

// ParseDate parses a YYYY-MM-DD calendar date
func ParseDate(date string) (time.Time, error) {
	return time.Parse(constants.DateFormat, date)
}

// ValidateDate checks if the string is a real YYYY-MM-DD date
func ValidateDate(date string) bool {
	_, err := ParseDate(date)
	return err == nil
}

// FormatDisplayDate renders a stored date as "Mon, Jan 2 2006", or returns it
// unchanged when it does not parse.
func FormatDisplayDate(date string) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format("Mon, Jan 2 2006")
}
