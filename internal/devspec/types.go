package devspec

import (
	"fmt"
	"strings"
)

// Field identifies one line of the resolved spec.
type Field string

const (
	FieldStorage          Field = "storage"
	FieldMemory           Field = "memory"
	FieldStorageAndMemory Field = "storage_and_memory"
	FieldProcessor        Field = "processor"
	FieldBattery          Field = "battery"
	FieldScreen           Field = "screen"
	FieldDeviceName       Field = "device_name"
)

// Fields lists every field in display order.
func Fields() []Field {
	return []Field{
		FieldDeviceName,
		FieldProcessor,
		FieldStorageAndMemory,
		FieldStorage,
		FieldMemory,
		FieldBattery,
		FieldScreen,
	}
}

// ParseField maps a field name to a Field. Matching ignores case and
// surrounding whitespace.
func ParseField(name string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Fields() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown field %q", name)
}

func (f Field) String() string { return string(f) }

// Inputs holds the raw readings for one resolution. Zero values mean
// "unavailable".
type Inputs struct {
	StorageBytes     uint64
	MemoryBytes      uint64
	CPUProperty      string
	PlatformProperty string
	DeviceModel      string
	BatteryMAh       float64
	Width            int
	Height           int
	Inset            int
}

// Overrides holds the manual per-field strings. Empty means unset.
type Overrides struct {
	Storage   string `mapstructure:"storage" json:"storage,omitempty" yaml:"storage,omitempty"`
	Memory    string `mapstructure:"memory" json:"memory,omitempty" yaml:"memory,omitempty"`
	Processor string `mapstructure:"processor" json:"processor,omitempty" yaml:"processor,omitempty"`
	Battery   string `mapstructure:"battery" json:"battery,omitempty" yaml:"battery,omitempty"`
	Screen    string `mapstructure:"screen" json:"screen,omitempty" yaml:"screen,omitempty"`
}

// Get returns the override for f. Fields without an override source return "".
func (o Overrides) Get(f Field) string {
	switch f {
	case FieldStorage:
		return o.Storage
	case FieldMemory:
		return o.Memory
	case FieldProcessor:
		return o.Processor
	case FieldBattery:
		return o.Battery
	case FieldScreen:
		return o.Screen
	default:
		return ""
	}
}

// ResolvedSpec is the set of display strings produced by one resolution.
type ResolvedSpec struct {
	DeviceName       string `json:"device_name" yaml:"device_name"`
	Processor        string `json:"processor" yaml:"processor"`
	StorageAndMemory string `json:"storage_and_memory" yaml:"storage_and_memory"`
	Storage          string `json:"storage" yaml:"storage"`
	Memory           string `json:"memory" yaml:"memory"`
	Battery          string `json:"battery" yaml:"battery"`
	Screen           string `json:"screen" yaml:"screen"`
}

// Get returns the value of f.
func (s ResolvedSpec) Get(f Field) (string, bool) {
	switch f {
	case FieldDeviceName:
		return s.DeviceName, true
	case FieldProcessor:
		return s.Processor, true
	case FieldStorageAndMemory:
		return s.StorageAndMemory, true
	case FieldStorage:
		return s.Storage, true
	case FieldMemory:
		return s.Memory, true
	case FieldBattery:
		return s.Battery, true
	case FieldScreen:
		return s.Screen, true
	}
	return "", false
}

// Map returns the spec keyed by field name.
func (s ResolvedSpec) Map() map[string]string {
	out := make(map[string]string, len(Fields()))
	for _, f := range Fields() {
		v, _ := s.Get(f)
		out[f.String()] = v
	}
	return out
}

// FormatText formats the spec as human-readable text
func (s ResolvedSpec) FormatText() string {
	return fmt.Sprintf("Device Specification:\n\n- Device: %s\n- Processor: %s\n- Memory | Storage: %s\n- Battery: %s\n- Screen: %s",
		s.DeviceName,
		s.Processor,
		s.StorageAndMemory,
		s.Battery,
		s.Screen)
}
