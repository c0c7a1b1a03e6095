// Package pandoc shells out to the pandoc document converter to turn
// marked-up course material into HTML for Canvas bodies.
//
// Conversion failures are recoverable: a non-zero exit is logged with
// the command and stderr, and the caller gets an empty string back.
// Callers detect failure by checking for empty output.
package pandoc

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Converter runs a pandoc binary with a fixed format pair and filter set.
// An optional preprocessor command expands macros in the input before it
// reaches pandoc.
type Converter struct {
	path    string
	filters []string
	options []string
	preproc []string
	logger  *log.Logger
}

// New locates the newest pandoc on PATH and returns a converter with the
// default filters and options used for course material. When a lua
// interpreter is available the macro preprocessor is enabled as the first
// pipeline stage.
func New(logger *log.Logger) (*Converter, error) {
	path, err := Find()
	if err != nil {
		return nil, err
	}
	c := NewConverter(path, logger)
	if lua, err := exec.LookPath("lua"); err == nil {
		c.preproc = []string{lua, "-l", "expand-macros"}
	}
	return c, nil
}

// NewConverter wraps an explicit binary path. Used by New and by tests
// that substitute a stand-in command.
func NewConverter(path string, logger *log.Logger) *Converter {
	if logger == nil {
		logger = log.New(os.Stderr, "[pandoc] ", log.LstdFlags)
	}
	return &Converter{
		path:    path,
		filters: []string{"href.lua"},
		options: []string{"--mathml"},
		logger:  logger,
	}
}

// SetFilters replaces the Lua filter list passed via -L.
func (c *Converter) SetFilters(filters ...string) { c.filters = filters }

// SetOptions replaces the extra command line options.
func (c *Converter) SetOptions(options ...string) { c.options = options }

// SetPreprocessor replaces the macro preprocessor command. Calling it with
// no arguments disables the stage.
func (c *Converter) SetPreprocessor(cmd ...string) { c.preproc = cmd }

// Find scans PATH (plus ~/local/bin) for pandoc binaries and returns the
// newest one. Versions below 2 are rejected.
func Find() (string, error) {
	dirs := filepath.SplitList(os.Getenv("PATH"))
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, "local", "bin"))
	}

	type candidate struct {
		version []int
		path    string
	}
	var found []candidate
	for _, dir := range dirs {
		p := filepath.Join(dir, "pandoc")
		if _, err := os.Stat(p); err != nil {
			continue
		}
		out, err := exec.Command(p, "--version").Output()
		if err != nil {
			continue
		}
		v, err := parseVersion(string(out))
		if err != nil {
			continue
		}
		found = append(found, candidate{version: v, path: p})
	}
	if len(found) == 0 {
		return "", fmt.Errorf("pandoc not found on PATH")
	}

	sort.Slice(found, func(i, j int) bool {
		return versionLess(found[j].version, found[i].version)
	})
	best := found[0]
	if best.version[0] < 2 {
		return "", fmt.Errorf("only too old pandoc version (%s) found: %s",
			versionString(best.version), best.path)
	}
	return best.path, nil
}

// parseVersion extracts the dotted version from the first line of
// "pandoc --version" output, e.g. "pandoc 3.1.11".
func parseVersion(out string) ([]int, error) {
	line, _, _ := strings.Cut(out, "\n")
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil, fmt.Errorf("unrecognized version output: %q", line)
	}
	parts := strings.Split(fields[1], ".")
	version := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("unrecognized version %q: %w", fields[1], err)
		}
		version = append(version, n)
	}
	return version, nil
}

func versionLess(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func versionString(v []int) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

func (c *Converter) args(srcFormat, outFormat string) []string {
	args := []string{}
	if srcFormat != "" {
		args = append(args, "-f", srcFormat)
	}
	if outFormat != "" {
		args = append(args, "-t", outFormat)
	}
	args = append(args, c.options...)
	for _, f := range c.filters {
		args = append(args, "-L", f)
	}
	return args
}

// run executes one pipeline stage on text. Failures are logged with the
// command line and stderr; stderr on success only warns.
func (c *Converter) run(name string, args []string, text string) (string, bool) {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(text)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		c.logger.Printf("ERROR: %s %s", name, strings.Join(args, " "))
		c.logger.Printf("ERROR: %s", stderr.String())
		return "", false
	}
	if stderr.Len() > 0 {
		c.logger.Printf("WARNING: %s %s", name, strings.Join(args, " "))
		c.logger.Printf("WARNING: %s", stderr.String())
	}
	return stdout.String(), true
}

// Convert pipes text through the macro preprocessor, when one is set, and
// then through the converter. On failure of either stage it logs the
// command and stderr and returns "".
func (c *Converter) Convert(text, srcFormat, outFormat string) string {
	if len(c.preproc) > 0 {
		expanded, ok := c.run(c.preproc[0], c.preproc[1:], text)
		if !ok {
			return ""
		}
		text = expanded
	}
	out, ok := c.run(c.path, c.args(srcFormat, outFormat), text)
	if !ok {
		return ""
	}
	return out
}

// listSep is joined between documents so a batch converts in a single
// pandoc run. Pandoc renders the bare word as its own paragraph, which
// ConvertList splits back on.
const listSep = "0123456789abcdefghijklmnopqrstuvwxyz"

// ConvertList converts several documents in one converter invocation and
// splits the result back into per-document output.
func (c *Converter) ConvertList(items []string, srcFormat, outFormat string) []string {
	text := strings.Join(items, "\n\n"+listSep+"\n\n")
	html := c.Convert(text, srcFormat, outFormat)
	return strings.Split(html, "\n<p>"+listSep+"</p>\n")
}
