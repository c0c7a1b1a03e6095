package schedule

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ReadCourseFile parses a multi-document YAML course file: the first
// document is the header, every following document overrides one session.
// Sections are generated immediately, so the result carries resolved
// dates, serials and week numbers.
func ReadCourseFile(path string) (*Header, []*Section, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open course file: %w", err)
	}
	defer f.Close()

	header, sections, err := readCourse(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return header, sections, nil
}

func readCourse(r io.Reader) (*Header, []*Section, error) {
	dec := yaml.NewDecoder(r)

	var headerDoc map[string]any
	if err := dec.Decode(&headerDoc); err != nil {
		return nil, nil, fmt.Errorf("failed to parse header document: %w", err)
	}
	header, err := ParseHeader(headerDoc)
	if err != nil {
		return nil, nil, err
	}

	var overrides []map[string]any
	for {
		var doc map[string]any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse session document %d: %w", len(overrides)+1, err)
		}
		overrides = append(overrides, doc)
	}

	return header, Generate(header, overrides), nil
}
