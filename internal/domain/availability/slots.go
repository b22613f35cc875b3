package availability

// GenerateSlots returns the candidate start times of a window: Start, Start+Interval, ...
// strictly before End. It does not check that a service fits before closing; see FitsWithin.
func GenerateSlots(window WorkingWindow) ([]TimeOfDay, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	span := int(window.End - window.Start)
	slots := make([]TimeOfDay, 0, (span+window.IntervalMinutes-1)/window.IntervalMinutes)
	for t := window.Start; t < window.End; t += TimeOfDay(window.IntervalMinutes) {
		slots = append(slots, t)
	}
	return slots, nil
}
