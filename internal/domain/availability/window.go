package availability

import (
	"errors"

	"barbershop-booking/internal/pkg/errs"
)

var ErrInvalidConfiguration = errors.New("invalid working window configuration")

// WorkingWindow is a barber's daily opening bounds and slot granularity.
// Windows crossing midnight are not supported.
type WorkingWindow struct {
	Start           TimeOfDay
	End             TimeOfDay
	IntervalMinutes int
}

func NewWorkingWindow(start, end TimeOfDay, intervalMinutes int) (WorkingWindow, error) {
	w := WorkingWindow{Start: start, End: end, IntervalMinutes: intervalMinutes}
	if err := w.Validate(); err != nil {
		return WorkingWindow{}, err
	}
	return w, nil
}

func (w WorkingWindow) Validate() error {
	if w.IntervalMinutes <= 0 {
		return errs.Mark(errs.Newf("slot interval must be positive, got %d", w.IntervalMinutes), ErrInvalidConfiguration)
	}
	if !w.Start.IsValid() || w.End < 0 || w.End > MinutesPerDay {
		return errs.Mark(errs.Newf("window bounds %d-%d out of range", int(w.Start), int(w.End)), ErrInvalidConfiguration)
	}
	if w.Start >= w.End {
		return errs.Mark(errs.Newf("window start %s must be before end %s", w.Start, w.End), ErrInvalidConfiguration)
	}
	return nil
}

func (w WorkingWindow) Contains(t TimeOfDay) bool {
	return t >= w.Start && t < w.End
}

// IsOnGrid reports whether t is one of the start times GenerateSlots would produce.
func (w WorkingWindow) IsOnGrid(t TimeOfDay) bool {
	if w.IntervalMinutes <= 0 || !w.Contains(t) {
		return false
	}
	return int(t-w.Start)%w.IntervalMinutes == 0
}
