package sysinfo

import (
	"context"
	"errors"
	"time"

	"mcp-device-spec/internal/config"
	"mcp-device-spec/internal/devspec"
	"mcp-device-spec/internal/logger"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
)

// Collector gathers raw readings from its sources. A nil source, or one that
// fails, yields a zero reading.
type Collector struct {
	Storage    StorageSource
	Memory     MemorySource
	Properties PropertySource
	Battery    BatterySource
	Display    DisplaySource
}

// Collect reads every source. It never fails; unavailable values are logged
// and left zero.
func (c *Collector) Collect(ctx context.Context) devspec.Inputs {
	start := time.Now()
	logger.SysInfo.Debug().Msg("Starting raw measurement collection")

	var in devspec.Inputs

	if c.Storage != nil {
		total, err := c.Storage.TotalStorageBytes(ctx)
		if err != nil {
			logger.SysInfo.Warn().Err(err).Msg("Storage size unavailable")
		} else {
			in.StorageBytes = total
			logger.SysInfo.Debug().
				Uint64("storage_bytes", total).
				Str("storage_human", humanize.IBytes(total)).
				Msg("Got storage size")
		}
	}

	if c.Memory != nil {
		total, err := c.Memory.TotalMemoryBytes(ctx)
		if err != nil {
			logger.SysInfo.Warn().Err(err).Msg("Memory size unavailable")
		} else {
			in.MemoryBytes = total
			logger.SysInfo.Debug().
				Uint64("memory_bytes", total).
				Str("memory_human", humanize.IBytes(total)).
				Msg("Got memory size")
		}
	}

	if c.Properties != nil {
		in.CPUProperty = c.Properties.Property(devspec.PropertyCPUModel)
		in.PlatformProperty = c.Properties.Property(devspec.PropertyPlatform)
		in.DeviceModel = c.Properties.Property(devspec.PropertyDeviceModel)
		logger.SysInfo.Debug().
			Str("cpu_property", in.CPUProperty).
			Str("platform_property", in.PlatformProperty).
			Str("device_model", in.DeviceModel).
			Msg("Got platform properties")
	}

	if c.Battery != nil {
		capacity, err := c.Battery.DesignCapacityMAh(ctx)
		if err != nil {
			unavailable(err, ErrNoBattery).Msg("Battery capacity unavailable")
		} else {
			in.BatteryMAh = capacity
		}
	}

	if c.Display != nil {
		width, height, err := c.Display.DisplaySize(ctx)
		if err != nil {
			unavailable(err, ErrNoDisplay).Msg("Display size unavailable")
		} else {
			in.Width, in.Height = width, height
		}

		inset, err := c.Display.DisplayInset(ctx)
		if err != nil {
			unavailable(err, ErrNoDisplay).Msg("Display inset unavailable")
		} else {
			in.Inset = inset
		}
	}

	logger.SysInfo.Debug().
		Dur("duration", time.Since(start)).
		Float64("battery_mah", in.BatteryMAh).
		Int("width", in.Width).
		Int("height", in.Height).
		Int("inset", in.Inset).
		Msg("Raw measurement collection completed")

	return in
}

// unavailable logs expected absences (no battery on a server) at debug and
// everything else at warn.
func unavailable(err, expected error) *zerolog.Event {
	if errors.Is(err, expected) {
		return logger.SysInfo.Debug().Err(err)
	}
	return logger.SysInfo.Warn().Err(err)
}

// NewCollector wires the host sources described by cfg. Property files or
// host facts that cannot be read are logged and skipped.
func NewCollector(ctx context.Context, cfg *config.Config) *Collector {
	src := cfg.Sources

	var chain ChainProperties

	if len(src.Properties) > 0 {
		inline, err := ParseProperties(src.Properties...)
		if err != nil {
			logger.SysInfo.Warn().Err(err).Msg("Ignoring inline properties")
		} else {
			chain = append(chain, inline)
		}
	}

	if len(src.PropsFiles) > 0 {
		files, err := LoadPropertyFiles(src.PropsFiles...)
		if err != nil {
			logger.SysInfo.Warn().Err(err).Strs("files", src.PropsFiles).Msg("Failed to read some property files")
		}
		chain = append(chain, files)
	}

	if src.HostProperties {
		hostProps, err := LoadHostProperties(ctx)
		if err != nil {
			logger.SysInfo.Warn().Err(err).Msg("Host properties partially unavailable")
		}
		chain = append(chain, hostProps)
	}

	var battery FirstBattery
	if src.PowerProfile != "" {
		battery = append(battery, PowerProfile{Path: src.PowerProfile})
	}
	battery = append(battery, PowerSupply{Root: src.SysfsRoot})

	return &Collector{
		Storage:    DiskStorage{Path: src.DataPath},
		Memory:     VirtualMemory{},
		Properties: chain,
		Battery:    battery,
		Display: Display{
			Width:        cfg.Display.Width,
			Height:       cfg.Display.Height,
			Inset:        cfg.Display.Inset,
			UsableHeight: cfg.Display.UsableHeight,
			Root:         src.SysfsRoot,
		},
	}
}

// Provider resolves the device spec from a Collector and fixed overrides.
type Provider struct {
	collector *Collector
	overrides devspec.Overrides
}

func NewProvider(collector *Collector, overrides devspec.Overrides) *Provider {
	return &Provider{collector: collector, overrides: overrides}
}

// Spec collects fresh readings and resolves every field.
func (p *Provider) Spec(ctx context.Context) devspec.ResolvedSpec {
	spec := devspec.Resolve(p.collector.Collect(ctx), p.overrides)

	logger.SysInfo.Debug().
		Str("storage", spec.Storage).
		Str("memory", spec.Memory).
		Str("processor", spec.Processor).
		Str("battery", spec.Battery).
		Str("screen", spec.Screen).
		Msg("Device spec resolved")

	return spec
}
