package database

import (
	"sort"
)

// EventsByDate projects a flat event list into the date → ordered events
// mapping the calendar renders. The mapping is recomputed from the store on
// demand, so a date key exists only while at least one event carries that
// date: deleting the last event of a day drops the key, never an empty
// bucket. Bucket order is the store's insertion order.
func EventsByDate(events []CalendarEvent) map[string][]CalendarEvent {
	byDate := make(map[string][]CalendarEvent)
	for _, e := range events {
		if e.Date == "" {
			continue
		}
		byDate[e.Date] = append(byDate[e.Date], e)
	}
	return byDate
}

// EventDates returns the days carrying at least one event, ascending. ISO
// day strings sort chronologically.
func EventDates(events []CalendarEvent) []string {
	byDate := EventsByDate(events)
	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// UpcomingEvents returns up to limit events on or after the given ISO day,
// soonest first.
func UpcomingEvents(events []CalendarEvent, today string, limit int) []CalendarEvent {
	var upcoming []CalendarEvent
	for _, e := range events {
		if e.Date >= today {
			upcoming = append(upcoming, e)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		if upcoming[i].Date != upcoming[j].Date {
			return upcoming[i].Date < upcoming[j].Date
		}
		return upcoming[i].Time < upcoming[j].Time
	})
	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}
