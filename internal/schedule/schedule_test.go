package schedule

import (
	"strings"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStripAccents(t *testing.T) {
	tests := map[string]string{
		"Első óra":   "Elso ora",
		"első óra":   "elso ora",
		"utolsó óra": "utolso ora",
		"időpont":    "idopont",
	}
	for in, want := range tests {
		if got := StripAccents(in); got != want {
			t.Errorf("StripAccents(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := map[string]string{
		"Első Óra":        "first_section",
		"Útolsó   \tÓrÁ":  "last_section",
		"Időpont":         "time_slot",
		"Csoport":         "title",
		"Rövidnév":        "short_name",
		"Szünetek":        "breaks",
		"Feladatok":       "exs",
		"  some   other ": "some other",
	}
	for in, want := range tests {
		if got := NormalizeKey(in); got != want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGenerateSkipsBreakWeeks(t *testing.T) {
	h := &Header{
		FirstSection: date(2022, 9, 15),
		Breaks:       []time.Time{date(2022, 9, 22)},
	}

	sections := Generate(h, []map[string]any{{}, {}})
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}

	first, second := sections[0], sections[1]
	if !first.Date.Equal(date(2022, 9, 15)) || first.Serial != 1 || first.Week != 1 {
		t.Errorf("first section = %v serial=%d week=%d", first.Date, first.Serial, first.Week)
	}
	// The break consumes week 2 without receiving a section; the serial
	// keeps counting emitted sections only.
	if !second.Date.Equal(date(2022, 9, 29)) || second.Serial != 2 || second.Week != 3 {
		t.Errorf("second section = %v serial=%d week=%d", second.Date, second.Serial, second.Week)
	}
}

func TestSectionTexts(t *testing.T) {
	h := &Header{FirstSection: date(2022, 9, 15)}
	sections := Generate(h, []map[string]any{
		{"Feladatok": "single exercise"},
		{"Feladatok": []any{"variant a", "variant b", ""}},
		{},
	})
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sections))
	}

	if got := sections[0].Texts("exs"); len(got) != 1 || got[0] != "single exercise" {
		t.Errorf("scalar attribute = %v", got)
	}
	got := sections[1].Texts("exs")
	if len(got) != 2 || got[0] != "variant a" || got[1] != "variant b" {
		t.Errorf("list attribute = %v", got)
	}
	if got := sections[2].Texts("exs"); got != nil {
		t.Errorf("missing attribute = %v", got)
	}
}

func TestGenerateBoundedByLastSection(t *testing.T) {
	h := &Header{
		FirstSection: date(2022, 9, 15),
		LastSection:  date(2022, 10, 6),
	}

	sections := Generate(h, nil)
	if len(sections) != 4 {
		t.Fatalf("expected 4 weekly sections, got %d", len(sections))
	}
	last := sections[3]
	if !last.Date.Equal(date(2022, 10, 6)) {
		t.Errorf("last section date = %v", last.Date)
	}

	// Override documents stop generation early even inside the range.
	sections = Generate(h, []map[string]any{{}, {}})
	if len(sections) != 2 {
		t.Errorf("expected override documents to bound generation, got %d sections", len(sections))
	}
}

func TestGenerateUnboundedWithoutOverrides(t *testing.T) {
	h := &Header{FirstSection: date(2022, 9, 15)}
	if sections := Generate(h, nil); sections != nil {
		t.Errorf("open-ended header without documents must yield nothing, got %d", len(sections))
	}
}

const testCourseYAML = `
---
Első óra: 2022-09-15
Utolsó óra: 2022-12-16
Csoport: Valószínűségszámítás II gyakorlat
időpont: Csütörtök 12.00-13.30
Szünetek: [2022-09-22, 2022-10-29]
rovidnev:
    paper: valszám2
    canvas: Val. szám. II gyak.
letszam: 10
template: "{{range .Sections}}{{.Serial}}. ({{.Date.Format \"2006-01-02\"}}) {{.Get \"exs\"}}\n{{end}}"

---

# 1.gyak 09.15.
description: |
    Analízis limesz tételeinek alkalmazása.
feladatok: |
    2524
    1129 1146[a]

hf: 1331 1413 2073
---
# 2.gyak
feladatok: |
    1521 1127 398[a]

hf: 1473  1176[ae]
`

func TestReadCourse(t *testing.T) {
	header, sections, err := readCourse(strings.NewReader(testCourseYAML))
	if err != nil {
		t.Fatalf("readCourse failed: %v", err)
	}

	if !header.FirstSection.Equal(date(2022, 9, 15)) {
		t.Errorf("first section = %v", header.FirstSection)
	}
	if header.Title != "Valószínűségszámítás II gyakorlat" {
		t.Errorf("title = %q", header.Title)
	}
	if header.TimeSlot != "Csütörtök 12.00-13.30" {
		t.Errorf("time slot = %q", header.TimeSlot)
	}
	if v, ok := header.Extra["letszam"]; !ok || v != 10 {
		t.Errorf("extra letszam = %v, %v", v, ok)
	}

	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	second := sections[1]
	if second.Week != 3 {
		t.Errorf("second section week = %d, want 3", second.Week)
	}
	if !second.Date.Equal(date(2022, 9, 29)) {
		t.Errorf("second section date = %v", second.Date)
	}

	// short_name is inherited from the header and may itself be a mapping.
	shortName, ok := second.Get("short_name").(map[string]any)
	if !ok {
		t.Fatalf("short_name = %T, want mapping", second.Get("short_name"))
	}
	if shortName["paper"] != "valszám2" {
		t.Errorf("short_name.paper = %v", shortName["paper"])
	}

	if got := sections[0].Get("hf"); got != "1331 1413 2073" {
		t.Errorf("hf = %v", got)
	}
}

func TestRenderTemplate(t *testing.T) {
	header, sections, err := readCourse(strings.NewReader(testCourseYAML))
	if err != nil {
		t.Fatalf("readCourse failed: %v", err)
	}

	text, err := Render(header, sections, time.Time{})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(text, "1. (2022-09-15)") {
		t.Errorf("rendered text missing first section: %q", text)
	}
	if !strings.Contains(text, "2. (2022-09-29)") {
		t.Errorf("rendered text missing second section: %q", text)
	}
	if !strings.Contains(text, "2524") {
		t.Errorf("rendered text missing exercises: %q", text)
	}
}

func TestRenderWithoutTemplate(t *testing.T) {
	h := &Header{FirstSection: date(2022, 9, 15)}
	if _, err := Render(h, nil, time.Time{}); err == nil {
		t.Error("expected error for a header without template")
	}
}

func TestAddMetaBlock(t *testing.T) {
	text, err := AddMetaBlock("https://canvas.example.edu", 28654,
		map[string]any{"files": map[string]any{"/problems/1.pdf": 1}}, "# body\n")
	if err != nil {
		t.Fatalf("AddMetaBlock failed: %v", err)
	}

	if !strings.HasPrefix(text, "---\n") {
		t.Errorf("metadata block must open the document: %q", text)
	}
	if !strings.Contains(text, "base_url: https://canvas.example.edu/courses/28654/") {
		t.Errorf("metadata missing base_url: %q", text)
	}
	if !strings.HasSuffix(text, "---\n# body\n") {
		t.Errorf("body must follow the closing delimiter: %q", text)
	}
}
