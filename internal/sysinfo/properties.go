package sysinfo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// MapProperties is an in-memory property store.
type MapProperties map[string]string

func (m MapProperties) Property(key string) string {
	return m[key]
}

// ChainProperties returns the first non-empty value across its sources.
type ChainProperties []PropertySource

func (c ChainProperties) Property(key string) string {
	for _, src := range c {
		if src == nil {
			continue
		}
		if v := src.Property(key); v != "" {
			return v
		}
	}
	return ""
}

// ParseProperties parses build.prop style "key=value" lines.
func ParseProperties(lines ...string) (MapProperties, error) {
	props := MapProperties{}
	if err := scanProperties(strings.NewReader(strings.Join(lines, "\n")), props); err != nil {
		return nil, fmt.Errorf("failed to parse properties: %w", err)
	}
	return props, nil
}

// LoadPropertyFiles reads build.prop style files. Later files win on
// duplicate keys.
func LoadPropertyFiles(paths ...string) (MapProperties, error) {
	props := MapProperties{}
	for _, path := range paths {
		if err := loadPropertyFile(path, props); err != nil {
			return props, fmt.Errorf("failed to read properties file %s: %w", path, err)
		}
	}
	return props, nil
}

func loadPropertyFile(path string, props MapProperties) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return scanProperties(f, props)
}

// scanProperties follows the init property file format. The key ends at the
// first '=' and the value is taken literally after trimming. Comments, import
// directives and lines without '=' are skipped.
func scanProperties(r io.Reader, props MapProperties) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxPropertyLine)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || isImport(line) {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		if key = strings.TrimSpace(key); key == "" {
			continue
		}
		props[key] = strings.TrimSpace(value)
	}
	return scanner.Err()
}

const maxPropertyLine = 1 << 20

func isImport(line string) bool {
	rest, ok := strings.CutPrefix(line, "import")
	return ok && (rest == "" || rest[0] == ' ' || rest[0] == '\t')
}
