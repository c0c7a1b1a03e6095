package schedule

import (
	"time"
)

// Section is one dated session of the course: the resolved date, its
// 1-based serial among emitted sessions, the 1-based calendar week it falls
// in, and the override attributes of its document. Attribute lookups fall
// back to the header.
type Section struct {
	Date   time.Time
	Serial int
	Week   int
	Header *Header
	Attrs  map[string]any
}

// newSection merges an override document (possibly nil) with the cursor
// position. Override keys are normalized like header keys.
func newSection(doc map[string]any, header *Header, date time.Time, serial, week int) *Section {
	attrs := make(map[string]any, len(doc))
	for key, value := range doc {
		attrs[NormalizeKey(key)] = value
	}
	return &Section{
		Date:   date,
		Serial: serial,
		Week:   week,
		Header: header,
		Attrs:  attrs,
	}
}

// Get looks up an attribute by normalized name, falling back to the header
// when the section's own document does not set it. Missing attributes
// yield nil, which renders as empty in templates.
func (s *Section) Get(name string) any {
	if v, ok := s.Attrs[name]; ok {
		return v
	}
	if v, ok := s.Header.Get(name); ok {
		return v
	}
	return nil
}

// Texts returns the attribute as a list of strings. A scalar string
// becomes a single-element list, so an attribute holds either one text or
// several variants of it. Empty strings and non-string items are dropped.
func (s *Section) Texts(name string) []string {
	switch v := s.Get(name).(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []any:
		var texts []string
		for _, item := range v {
			if text, ok := item.(string); ok && text != "" {
				texts = append(texts, text)
			}
		}
		return texts
	}
	return nil
}

// Has reports whether the attribute resolves on the section or its header.
func (s *Section) Has(name string) bool {
	if _, ok := s.Attrs[name]; ok {
		return true
	}
	_, ok := s.Header.Get(name)
	return ok
}

// Generate emits the dated sections of a course. The cursor starts at the
// first session with serial 1 and week 1; after each emission the date
// advances by whole weeks, skipping breaks (which still consume week
// numbers) until a free date is found.
//
// With a non-nil override slice, generation pairs sections with override
// documents and stops at whichever runs out first: the documents or, when
// the header has a last session date, the date range. With nil overrides
// the date range alone bounds generation, so a header without a last
// session date yields nothing rather than an endless schedule.
func Generate(h *Header, overrides []map[string]any) []*Section {
	bounded := !h.LastSection.IsZero()
	date, serial, week := h.FirstSection, 1, 1

	var sections []*Section
	for i := 0; ; i++ {
		if overrides != nil {
			if i >= len(overrides) {
				break
			}
		} else if !bounded {
			break
		}
		if bounded && date.After(h.LastSection) {
			break
		}

		var doc map[string]any
		if overrides != nil {
			doc = overrides[i]
		}
		sections = append(sections, newSection(doc, h, date, serial, week))

		date, week = h.NextWeek(date, week)
		serial++
	}
	return sections
}
