package availability

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"barbershop-booking/internal/pkg/errs"
)

const MinutesPerDay = 24 * 60

var ErrInvalidTimeOfDay = errors.New("invalid time of day")

// TimeOfDay is a wall-clock time without a date, stored as minutes since midnight.
type TimeOfDay int

// At builds a TimeOfDay from an hour and minute without validation.
func At(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// ParseTimeOfDay accepts "H:MM" and "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(mm) != 2 || hh == "" || len(hh) > 2 {
		return 0, errs.Mark(errs.Newf("malformed time %q", s), ErrInvalidTimeOfDay)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, errs.Mark(errs.Newf("hour out of range in %q", s), ErrInvalidTimeOfDay)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, errs.Mark(errs.Newf("minute out of range in %q", s), ErrInvalidTimeOfDay)
	}
	return At(hour, minute), nil
}

func (t TimeOfDay) Minutes() int { return int(t) }

func (t TimeOfDay) IsValid() bool {
	return t >= 0 && t < MinutesPerDay
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, errs.Mark(errs.Newf("minutes %d out of range", int(t)), ErrInvalidTimeOfDay)
	}
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeOfDay(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
