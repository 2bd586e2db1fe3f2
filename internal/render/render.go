// Package render presents a resolved device spec as text, JSON, YAML or a
// styled terminal card.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"mcp-device-spec/internal/devspec"
	"mcp-device-spec/internal/logger"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Format selects an output representation.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCard Format = "card"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML, FormatCard}
}

// ParseFormat maps a name to a Format. The empty string selects text.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return FormatText, nil
	}
	for _, f := range Formats() {
		if Format(name) == f {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format %q", name)
}

// Write renders spec to w in the given format.
func Write(w io.Writer, spec devspec.ResolvedSpec, format Format) error {
	logger.Render.Debug().Str("format", string(format)).Msg("Rendering device spec")

	switch format {
	case FormatText, "":
		_, err := fmt.Fprintln(w, spec.FormatText())
		return err
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(spec)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(spec); err != nil {
			return err
		}
		return encoder.Close()
	case FormatCard:
		_, err := fmt.Fprintln(w, Card(spec))
		return err
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// String renders spec to a string.
func String(spec devspec.ResolvedSpec, format Format) (string, error) {
	var sb strings.Builder
	if err := Write(&sb, spec, format); err != nil {
		return "", err
	}
	return sb.String(), nil
}

var (
	colorPrimary = lipgloss.Color("39")
	colorMuted   = lipgloss.Color("245")

	cardBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(12)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))
)

var cardRows = []struct {
	label string
	field devspec.Field
}{
	{"Processor", devspec.FieldProcessor},
	{"Storage", devspec.FieldStorageAndMemory},
	{"Battery", devspec.FieldBattery},
	{"Display", devspec.FieldScreen},
}

// Card renders the spec the way the settings "about" card shows it.
func Card(spec devspec.ResolvedSpec) string {
	lines := []string{titleStyle.Render(spec.DeviceName)}
	for _, row := range cardRows {
		value, _ := spec.Get(row.field)
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render(row.label),
			valueStyle.Render(value),
		))
	}
	return cardBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
