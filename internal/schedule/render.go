package schedule

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"gopkg.in/yaml.v3"
)

// RenderData is the environment a header template is executed in.
type RenderData struct {
	Header   *Header
	Sections []*Section
	Until    time.Time
}

// Render executes the header's template over the sections. The optional
// cutoff defaults to the last session date; templates use it to hide
// future content ({{if not (.Date.After $.Until)}}...).
func Render(h *Header, sections []*Section, until time.Time) (string, error) {
	if h.Template == "" {
		return "", fmt.Errorf("header has no template")
	}
	if until.IsZero() {
		until = h.LastSection
	}

	tmpl, err := template.New("schedule").Parse(h.Template)
	if err != nil {
		return "", fmt.Errorf("failed to parse schedule template: %w", err)
	}

	var buf strings.Builder
	err = tmpl.Execute(&buf, RenderData{Header: h, Sections: sections, Until: until})
	if err != nil {
		return "", fmt.Errorf("failed to render schedule: %w", err)
	}
	return buf.String(), nil
}

// AddMetaBlock prepends a YAML metadata preamble carrying the course base
// URL and the cached path->id data. Conversion filters read the preamble to
// rewrite logical course links into real URLs.
func AddMetaBlock(baseURL string, courseID int, fsdata map[string]any, text string) (string, error) {
	coursedata := map[string]any{
		"base_url": fmt.Sprintf("%s/courses/%d/", baseURL, courseID),
	}
	for k, v := range fsdata {
		coursedata[k] = v
	}

	meta, err := yaml.Marshal(map[string]any{"coursedata": coursedata})
	if err != nil {
		return "", fmt.Errorf("failed to encode metadata block: %w", err)
	}
	return strings.Join([]string{"", string(meta), text}, "---\n"), nil
}
