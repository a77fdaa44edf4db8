package usecases

import (
	"sort"
	"time"

	"menvo.backend/internal/domain/entities"
	domainerrors "menvo.backend/internal/domain/errors"
)

const dateLayout = "2006-01-02"

type preparedWindow struct {
	weekday  int
	startMin int
	endMin   int
	loc      *time.Location
}

// GenerateSlots expands weekly availability into concrete bookable slots for every calendar date in
// [StartDate, EndDate]. Each window is cut into consecutive Duration pieces and a shorter tail is dropped.
// Pieces starting before Now or overlapping a non-cancelled appointment are left out.
// The result is grouped by date, ordered by date then start instant, and omits empty days.
func GenerateSlots(q entities.SlotQuery) ([]entities.DaySlots, error) {
	if q.Duration <= 0 || q.Duration%time.Minute != 0 {
		return nil, domainerrors.FieldError("duration", "duration must be a positive whole number of minutes")
	}
	durMin := int(q.Duration / time.Minute)

	first := calendarDate(q.StartDate)
	last := calendarDate(q.EndDate)
	if last.Before(first) {
		return nil, domainerrors.FieldError("endDate", "endDate must not be before startDate")
	}

	windows := make([]preparedWindow, 0, len(q.Availability))
	for _, slot := range q.Availability {
		if slot == nil || !slot.IsActive {
			continue
		}
		startMin, endMin, err := slot.Minutes()
		if err != nil {
			return nil, domainerrors.Validation("availability has malformed times", map[string]string{"availability": err.Error()})
		}
		loc, err := slot.Location()
		if err != nil {
			return nil, domainerrors.Validation("availability has an unknown timezone", map[string]string{"availability": err.Error()})
		}
		windows = append(windows, preparedWindow{weekday: slot.DayOfWeek, startMin: startMin, endMin: endMin, loc: loc})
	}

	var days []entities.DaySlots
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		weekday := int(d.Weekday())
		seen := map[int64]struct{}{}
		var slots []entities.BookableSlot

		for _, w := range windows {
			if w.weekday != weekday {
				continue
			}
			for m := w.startMin; m+durMin <= w.endMin; m += durMin {
				start := time.Date(d.Year(), d.Month(), d.Day(), 0, m, 0, 0, w.loc)
				end := start.Add(q.Duration)
				if start.Before(q.Now) {
					continue
				}
				if collides(q.Existing, start, end) {
					continue
				}
				key := start.UnixNano()
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				slots = append(slots, entities.BookableSlot{
					Date:         d.Format(dateLayout),
					StartTime:    start.Format("15:04"),
					EndTime:      end.Format("15:04"),
					FullDateTime: start,
				})
			}
		}

		if len(slots) == 0 {
			continue
		}
		sort.SliceStable(slots, func(i, j int) bool {
			return slots[i].FullDateTime.Before(slots[j].FullDateTime)
		})
		days = append(days, entities.DaySlots{Date: d.Format(dateLayout), Weekday: weekday, Slots: slots})
	}

	return days, nil
}

// FindSlotAt returns the generated slot starting at the instant at, if any
func FindSlotAt(days []entities.DaySlots, at time.Time) (entities.BookableSlot, bool) {
	for _, day := range days {
		for _, s := range day.Slots {
			if s.FullDateTime.Equal(at) {
				return s, true
			}
		}
	}
	return entities.BookableSlot{}, false
}

func collides(existing []*entities.Appointment, start, end time.Time) bool {
	for _, appt := range existing {
		if appt != nil && appt.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// calendarDate keeps the year, month and day of t as written, dropping clock and zone
func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses YYYY-MM-DD as a calendar date
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
