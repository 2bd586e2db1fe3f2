package sysinfo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"mcp-device-spec/internal/devspec"

	"github.com/spf13/cast"
)

// ErrNoDisplay is returned when no connected display can be found.
var ErrNoDisplay = errors.New("no connected display")

// Display reports the default display geometry. A configured Width or Height
// wins; a dimension left at zero comes from the preferred mode of the first
// connected DRM connector under <Root>/class/drm. UsableHeight, when set, marks the content
// area and the rest of the height becomes the inset.
type Display struct {
	Width        int
	Height       int
	Inset        int
	UsableHeight int
	Root         string
}

func (d Display) DisplaySize(ctx context.Context) (int, int, error) {
	width, height, err := d.fullSize(ctx)
	if err != nil {
		return 0, 0, err
	}
	if d.UsableHeight > 0 && d.UsableHeight < height {
		height = d.UsableHeight
	}
	return width, height, nil
}

func (d Display) DisplayInset(ctx context.Context) (int, error) {
	if d.Inset > 0 {
		return d.Inset, nil
	}
	if d.UsableHeight == 0 {
		return 0, nil
	}
	_, height, err := d.fullSize(ctx)
	if err != nil {
		return 0, err
	}
	return devspec.NavigationInset(d.UsableHeight, height), nil
}

// fullSize returns the configured size. A dimension left at zero is taken
// from the DRM probe.
func (d Display) fullSize(ctx context.Context) (int, int, error) {
	if d.Width > 0 && d.Height > 0 {
		return d.Width, d.Height, nil
	}

	width, height, err := d.probe(ctx)
	if err != nil {
		return 0, 0, err
	}
	if d.Width > 0 {
		width = d.Width
	}
	if d.Height > 0 {
		height = d.Height
	}
	return width, height, nil
}

func (d Display) probe(_ context.Context) (int, int, error) {
	connectors, err := filepath.Glob(filepath.Join(d.Root, "class", "drm", "*"))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list DRM connectors: %w", err)
	}

	for _, dir := range connectors {
		if status, _ := readSysfsString(filepath.Join(dir, "status")); status != "connected" {
			continue
		}
		modes, err := readSysfsString(filepath.Join(dir, "modes"))
		if err != nil || modes == "" {
			continue
		}
		// The first listed mode is the preferred one.
		width, height, err := parseMode(strings.SplitN(modes, "\n", 2)[0])
		if err != nil {
			continue
		}
		return width, height, nil
	}

	return 0, 0, ErrNoDisplay
}

// parseMode parses a DRM mode name such as "1920x1080" or "1920x1080i".
func parseMode(mode string) (int, int, error) {
	w, h, ok := strings.Cut(strings.TrimSpace(mode), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid mode %q", mode)
	}
	h = strings.TrimRight(h, "ip")

	width, err := cast.ToIntE(w)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid mode width %q: %w", mode, err)
	}
	height, err := cast.ToIntE(h)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid mode height %q: %w", mode, err)
	}
	return width, height, nil
}
