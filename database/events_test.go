package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvents() []CalendarEvent {
	return []CalendarEvent{
		{EventID: 1, Title: "Examen Maths", Type: EventExam, Date: "2025-01-20", Time: "09:00"},
		{EventID: 2, Title: "Réunion parents", Type: EventMeeting, Date: "2025-01-22", Time: "18:00"},
		{EventID: 3, Title: "Devoir Français", Type: EventHomework, Date: "2025-01-20", Time: "14:00"},
	}
}

func TestEventsByDateGroupsInInputOrder(t *testing.T) {
	byDate := EventsByDate(sampleEvents())

	require.Len(t, byDate, 2)
	require.Len(t, byDate["2025-01-20"], 2)
	assert.Equal(t, "Examen Maths", byDate["2025-01-20"][0].Title)
	assert.Equal(t, "Devoir Français", byDate["2025-01-20"][1].Title)
}

func TestEventsByDateAddPreservesExistingOrder(t *testing.T) {
	events := append(sampleEvents(), CalendarEvent{EventID: 4, Title: "Examen Physique", Type: EventExam, Date: "2025-01-20", Time: "16:00"})

	byDate := EventsByDate(events)
	day := byDate["2025-01-20"]
	require.Len(t, day, 3)
	assert.Equal(t, "Examen Maths", day[0].Title)
	assert.Equal(t, "Devoir Français", day[1].Title)
	assert.Equal(t, "Examen Physique", day[2].Title)
}

func TestEventsByDateDropsEmptiedDays(t *testing.T) {
	events := sampleEvents()

	// Remove the only event of the 22nd.
	var remaining []CalendarEvent
	for _, e := range events {
		if e.EventID != 2 {
			remaining = append(remaining, e)
		}
	}

	byDate := EventsByDate(remaining)
	_, exists := byDate["2025-01-22"]
	assert.False(t, exists, "a day with no events must not keep an empty bucket")
}

func TestEventsByDateSkipsBlankDates(t *testing.T) {
	events := []CalendarEvent{{EventID: 1, Title: "sans date"}}
	assert.Empty(t, EventsByDate(events))
}

func TestEventDatesAreSortedAscending(t *testing.T) {
	dates := EventDates(sampleEvents())
	assert.Equal(t, []string{"2025-01-20", "2025-01-22"}, dates)
}

func TestUpcomingEventsSortsAndLimits(t *testing.T) {
	events := sampleEvents()

	upcoming := UpcomingEvents(events, "2025-01-20", 2)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "Examen Maths", upcoming[0].Title)
	assert.Equal(t, "Devoir Français", upcoming[1].Title)

	past := UpcomingEvents(events, "2025-02-01", 3)
	assert.Empty(t, past)
}
