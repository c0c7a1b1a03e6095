package schedule

import (
	"fmt"
	"time"
)

// Header carries the course-level fields of a schedule document. The
// recognized fields form a fixed whitelist; any other key survives in
// Extra under its normalized name instead of becoming a field.
type Header struct {
	// FirstSection is the date of the first session.
	FirstSection time.Time
	// LastSection bounds generation; the zero value means open-ended.
	LastSection time.Time
	// Breaks are dates that never receive a session.
	Breaks []time.Time
	// Title is the course title.
	Title string
	// ShortName identifies the course in generated documents. It may be a
	// plain string or a mapping of per-output-format names.
	ShortName any
	// TimeSlot is the weekly slot as free text ("Csütörtök 12.00-13.30").
	TimeSlot string
	// Template is the body template the sections are rendered through.
	Template string
	// Extra holds the unrecognized keys of the header document.
	Extra map[string]any
}

// ParseHeader builds a Header from the first document of a course file.
// Keys are normalized before matching; first_section is required.
func ParseHeader(doc map[string]any) (*Header, error) {
	h := &Header{Extra: make(map[string]any)}
	for key, value := range doc {
		name := NormalizeKey(key)
		var err error
		switch name {
		case "first_section":
			h.FirstSection, err = asDate(value)
		case "last_section":
			h.LastSection, err = asDate(value)
		case "breaks":
			h.Breaks, err = asDates(value)
		case "title":
			h.Title = fmt.Sprint(value)
		case "short_name":
			h.ShortName = value
		case "time_slot":
			h.TimeSlot = fmt.Sprint(value)
		case "template":
			h.Template = fmt.Sprint(value)
		default:
			h.Extra[name] = value
		}
		if err != nil {
			return nil, fmt.Errorf("header field %q: %w", key, err)
		}
	}
	if h.FirstSection.IsZero() {
		return nil, fmt.Errorf("header is missing the first session date")
	}
	return h, nil
}

// Get looks up a field or extra attribute by its normalized name.
func (h *Header) Get(name string) (any, bool) {
	switch name {
	case "first_section":
		return h.FirstSection, true
	case "last_section":
		if h.LastSection.IsZero() {
			return nil, false
		}
		return h.LastSection, true
	case "breaks":
		return h.Breaks, true
	case "title":
		return h.Title, true
	case "short_name":
		return h.ShortName, true
	case "time_slot":
		return h.TimeSlot, true
	case "template":
		return h.Template, true
	}
	v, ok := h.Extra[name]
	return v, ok
}

// IsBreak reports whether date falls on a configured break.
func (h *Header) IsBreak(date time.Time) bool {
	for _, b := range h.Breaks {
		if sameDay(b, date) {
			return true
		}
	}
	return false
}

// NextWeek advances the cursor by whole weeks until it lands on a
// non-break date. Every 7-day step counts as a week, including steps that
// were skipped for a break: a break week consumes a week number without
// ever receiving a session.
func (h *Header) NextWeek(date time.Time, week int) (time.Time, int) {
	for {
		date = date.AddDate(0, 0, 7)
		week++
		if !h.IsBreak(date) {
			return date, week
		}
	}
}

// asDate accepts the date representations that reach a parsed document:
// time.Time from the YAML decoder and "2006-01-02" strings. The result is
// normalized to midnight UTC so dates compare by day.
func asDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return midnight(d), nil
	case string:
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q: %w", d, err)
		}
		return midnight(t), nil
	}
	return time.Time{}, fmt.Errorf("invalid date value %v", v)
}

func asDates(v any) ([]time.Time, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list of dates, got %v", v)
	}
	dates := make([]time.Time, 0, len(list))
	for _, item := range list {
		d, err := asDate(item)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
