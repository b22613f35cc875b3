package availability

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"barbershop-booking/internal/pkg/errs"
)

// DefaultServiceDurationMinutes is used when a duration label cannot be parsed.
const DefaultServiceDurationMinutes = 30

var ErrUnparsableDuration = errors.New("unparsable duration label")

// ParseDurationLabel reads the leading run of digits of a free-text label such as "45 min".
// Leading whitespace is skipped. A label without leading digits, with a value of zero,
// or longer than a day is an error.
func ParseDurationLabel(label string) (int, error) {
	trimmed := strings.TrimLeftFunc(label, unicode.IsSpace)
	end := strings.IndexFunc(trimmed, func(r rune) bool { return r < '0' || r > '9' })
	if end == -1 {
		end = len(trimmed)
	}
	if end == 0 {
		return 0, errs.Mark(errs.Newf("no leading digits in %q", label), ErrUnparsableDuration)
	}

	minutes, err := strconv.Atoi(trimmed[:end])
	if err != nil {
		return 0, errs.Mark(errs.Wrapf(err, "parse %q", label), ErrUnparsableDuration)
	}
	if minutes <= 0 {
		return 0, errs.Mark(errs.Newf("non-positive duration in %q", label), ErrUnparsableDuration)
	}
	if minutes > MinutesPerDay {
		return 0, errs.Mark(errs.Newf("duration in %q exceeds a day", label), ErrUnparsableDuration)
	}
	return minutes, nil
}

// DurationFromLabel applies the lenient policy: on any parse failure it returns
// DefaultServiceDurationMinutes and fellBack=true. It never fails.
func DurationFromLabel(label string) (minutes int, fellBack bool) {
	minutes, err := ParseDurationLabel(label)
	if err != nil {
		return DefaultServiceDurationMinutes, true
	}
	return minutes, false
}
