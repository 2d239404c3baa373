package service

import (
	"sort"
	"strconv"
	"strings"

	"basamu_backend/internals/features/content/events/model"
)

type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
)

// ParseSortOrder defaults to newest for anything it does not recognise.
func ParseSortOrder(s string) SortOrder {
	if SortOrder(strings.ToLower(strings.TrimSpace(s))) == SortOldest {
		return SortOldest
	}
	return SortNewest
}

type Filter struct {
	Query string
	Year  string
	Sort  SortOrder
}

// ViewState tells "nothing published yet" apart from "nothing matches the filter".
type ViewState string

const (
	StateEmpty     ViewState = "empty"
	StateNoMatches ViewState = "no_matches"
	StateOK        ViewState = "ok"
)

func StateOf(total, matched int) ViewState {
	switch {
	case total == 0:
		return StateEmpty
	case matched == 0:
		return StateNoMatches
	default:
		return StateOK
	}
}

// FilterEvents searches title and description, keeps one year and orders by date.
// It works on an already-fetched slice and never modifies it. Undated events are
// dropped by a year filter and sort last in either order.
func FilterEvents(events []model.EventModel, f Filter) []model.EventModel {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	year := strings.TrimSpace(f.Year)

	out := make([]model.EventModel, 0, len(events))
	for _, e := range events {
		if q != "" &&
			!strings.Contains(strings.ToLower(e.EventTitle), q) &&
			!strings.Contains(strings.ToLower(e.EventDescription), q) {
			continue
		}
		if year != "" && (e.EventDate == nil || strconv.Itoa(e.EventDate.Year()) != year) {
			continue
		}
		out = append(out, e)
	}

	oldest := f.Sort == SortOldest
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].EventDate, out[j].EventDate
		switch {
		case a == nil || b == nil:
			return a != nil && b == nil
		case oldest:
			return a.Before(*b)
		default:
			return a.After(*b)
		}
	})
	return out
}

// Years lists the distinct event years, newest first, for the year picker.
func Years(events []model.EventModel) []string {
	seen := map[int]bool{}
	var years []int
	for _, e := range events {
		if e.EventDate == nil {
			continue
		}
		if y := e.EventDate.Year(); !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	out := make([]string, len(years))
	for i, y := range years {
		out[i] = strconv.Itoa(y)
	}
	return out
}
