package availability

// Appointment is the read-only projection of an existing booking used for overlap checks.
type Appointment struct {
	Time            TimeOfDay
	DurationMinutes int
}

func (a Appointment) End() int {
	return int(a.Time) + a.DurationMinutes
}

// overlaps is the half-open intersection test for [slot, slot+duration) and [app.Time, app.End()).
// Touching boundaries do not overlap. The slot end is never materialized, so a huge
// serviceDuration cannot wrap around.
func overlaps(slot TimeOfDay, serviceDuration int, app Appointment) bool {
	slotStart := int(slot)
	return slotStart < app.End() && serviceDuration > int(app.Time)-slotStart
}

// IsOverlapping reports whether a booking at slot for serviceDuration minutes
// collides with any existing appointment. Order of existing is irrelevant.
func IsOverlapping(slot TimeOfDay, serviceDuration int, existing []Appointment) bool {
	for _, app := range existing {
		if overlaps(slot, serviceDuration, app) {
			return true
		}
	}
	return false
}

// FilterAvailable keeps the candidates that overlap no existing appointment,
// preserving candidate order. The result is never nil.
func FilterAvailable(candidates []TimeOfDay, serviceDuration int, existing []Appointment) []TimeOfDay {
	available := make([]TimeOfDay, 0, len(candidates))
	for _, slot := range candidates {
		if !IsOverlapping(slot, serviceDuration, existing) {
			available = append(available, slot)
		}
	}
	return available
}

// Conflicts returns the existing appointments a proposed slot collides with.
func Conflicts(slot TimeOfDay, serviceDuration int, existing []Appointment) []Appointment {
	var hits []Appointment
	for _, app := range existing {
		if overlaps(slot, serviceDuration, app) {
			hits = append(hits, app)
		}
	}
	return hits
}

// FitsWithin reports whether a service starting at slot ends no later than the window closes.
func FitsWithin(slot TimeOfDay, serviceDuration int, window WorkingWindow) bool {
	return serviceDuration <= int(window.End)-int(slot)
}

// KeepFitting drops candidates that would run past closing time.
func KeepFitting(candidates []TimeOfDay, serviceDuration int, window WorkingWindow) []TimeOfDay {
	kept := make([]TimeOfDay, 0, len(candidates))
	for _, slot := range candidates {
		if FitsWithin(slot, serviceDuration, window) {
			kept = append(kept, slot)
		}
	}
	return kept
}

// DropBefore removes candidates starting earlier than cutoff.
func DropBefore(candidates []TimeOfDay, cutoff TimeOfDay) []TimeOfDay {
	kept := make([]TimeOfDay, 0, len(candidates))
	for _, slot := range candidates {
		if slot >= cutoff {
			kept = append(kept, slot)
		}
	}
	return kept
}
