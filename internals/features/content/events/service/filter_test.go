package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"basamu_backend/internals/features/content/events/model"
	helper "basamu_backend/internals/helpers"
)

func event(title, desc string, date string) model.EventModel {
	e := model.EventModel{EventTitle: title, EventDescription: desc}
	if date != "" {
		t, _ := time.Parse("2006-01-02", date)
		e.EventDate = &t
	}
	return e
}

func dates(events []model.EventModel) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		if e.EventDate == nil {
			out = append(out, "undated")
			continue
		}
		out = append(out, e.EventDate.Format("2006-01-02"))
	}
	return out
}

func TestFilterEventsYearAndOldestFirst(t *testing.T) {
	events := []model.EventModel{
		event("Cultural gala", "", "2024-11-02"),
		event("Orientation", "", "2024-06-15"),
		event("Founders day", "", "2023-01-01"),
	}
	got := FilterEvents(events, Filter{Year: "2024", Sort: SortOldest})
	assert.Equal(t, []string{"2024-06-15", "2024-11-02"}, dates(got))
	assert.Equal(t, "Cultural gala", events[0].EventTitle, "input is not reordered")
}

func TestFilterEvents(t *testing.T) {
	events := []model.EventModel{
		event("Kitara night", "Music and dance", "2024-11-02"),
		event("Talk", "Ekitaguriro workshop", ""),
		event("Sports day", "Football", "2023-03-10"),
		event("Kitara reunion", "Alumni", "2025-01-20"),
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"no filter newest first, undated last", Filter{}, []string{"2025-01-20", "2024-11-02", "2023-03-10", "undated"}},
		{"oldest first keeps undated last", Filter{Sort: SortOldest}, []string{"2023-03-10", "2024-11-02", "2025-01-20", "undated"}},
		{"query matches title case-insensitively", Filter{Query: "KITARA"}, []string{"2025-01-20", "2024-11-02"}},
		{"query matches description", Filter{Query: "workshop"}, []string{"undated"}},
		{"year drops undated", Filter{Year: "2023"}, []string{"2023-03-10"}},
		{"query and year combine", Filter{Query: "kitara", Year: "2024"}, []string{"2024-11-02"}},
		{"no matches", Filter{Query: "graduation"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dates(FilterEvents(events, tt.filter)))
		})
	}
}

func TestStateOf(t *testing.T) {
	assert.Equal(t, StateEmpty, StateOf(0, 0))
	assert.Equal(t, StateNoMatches, StateOf(3, 0))
	assert.Equal(t, StateOK, StateOf(3, 2))
}

func TestYearsAndSortOrder(t *testing.T) {
	events := []model.EventModel{
		event("a", "", "2023-01-01"), event("b", "", ""), event("c", "", "2024-06-15"), event("d", "", "2024-11-02"),
	}
	assert.Equal(t, []string{"2024", "2023"}, Years(events))
	assert.Equal(t, SortOldest, ParseSortOrder(" Oldest "))
	assert.Equal(t, SortNewest, ParseSortOrder(""))
	assert.Equal(t, SortNewest, ParseSortOrder("random"))
}

func TestFilterEventsYearAsEntered(t *testing.T) {
	raw := "2024-12-31T23:30:00-05:00"
	date, err := helper.ParseOptionalDate(&raw)
	require.NoError(t, err)
	events := []model.EventModel{{EventTitle: "New year's eve", EventDate: date}}

	assert.Len(t, FilterEvents(events, Filter{Year: "2024"}), 1)
	assert.Empty(t, FilterEvents(events, Filter{Year: "2025"}))
	assert.Equal(t, []string{"2024"}, Years(events))
}
