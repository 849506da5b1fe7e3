// internal/calendar/calendar.go

// Package calendar décide quels événements du foyer tombent un jour donné,
// en déroulant leur règle de récurrence.
package calendar

import (
	"sort"
	"time"

	"foyer-finance/internal/domain"
)

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// OccursOn dit si l'événement a une occurrence le jour donné. Pour un
// événement ponctuel avec date de fin, chaque jour de l'intervalle compte.
// Un événement récurrent sans date de fin se répète indéfiniment.
func OccursOn(ev domain.Event, date time.Time) bool {
	day := dayOf(date)
	start := dayOf(ev.StartDate)
	var end *time.Time
	if ev.EndDate != nil {
		e := dayOf(*ev.EndDate)
		end = &e
	}

	switch ev.Frequency {
	case domain.EventOnce:
		if end != nil {
			return !day.Before(start) && !day.After(*end)
		}
		return day.Equal(start)

	case domain.EventDaily:
		if end != nil {
			return !day.Before(start) && !day.After(*end)
		}
		return !day.Before(start)

	case domain.EventWeekly:
		if end != nil && day.After(*end) {
			return false
		}
		return !day.Before(start) && day.Weekday() == start.Weekday()

	case domain.EventMonthly:
		if end != nil && day.After(*end) {
			return false
		}
		return day.Day() == start.Day() && !day.Before(start)

	case domain.EventYearly:
		if end != nil && day.After(*end) {
			return false
		}
		return day.Day() == start.Day() && day.Month() == start.Month() && !day.Before(start)

	default:
		return false
	}
}

// EventsForDate filtre les événements qui ont une occurrence le jour donné.
func EventsForDate(events []domain.Event, date time.Time) []domain.Event {
	var out []domain.Event
	for _, ev := range events {
		if OccursOn(ev, date) {
			out = append(out, ev)
		}
	}
	return out
}

// Occurrence est une occurrence concrète d'un événement dans un intervalle.
type Occurrence struct {
	Event domain.Event `json:"event"`
	Date  time.Time    `json:"date"`
}

// Upcoming déroule les occurrences des événements sur [from, to], triées
// par date puis par titre.
func Upcoming(events []domain.Event, from, to time.Time) []Occurrence {
	var out []Occurrence
	for day := dayOf(from); !day.After(dayOf(to)); day = day.AddDate(0, 0, 1) {
		for _, ev := range events {
			if OccursOn(ev, day) {
				out = append(out, Occurrence{Event: ev, Date: day})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Event.Title < out[j].Event.Title
	})
	return out
}
