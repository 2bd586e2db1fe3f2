package sysinfo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mcp-device-spec/internal/devspec"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// DiskStorage measures the filesystem mounted at Path.
type DiskStorage struct {
	Path string
}

func (d DiskStorage) TotalStorageBytes(ctx context.Context) (uint64, error) {
	usage, err := disk.UsageWithContext(ctx, d.Path)
	if err != nil {
		return 0, fmt.Errorf("failed to get disk usage for %s: %w", d.Path, err)
	}
	return usage.Total, nil
}

// VirtualMemory measures physical memory.
type VirtualMemory struct{}

func (VirtualMemory) TotalMemoryBytes(ctx context.Context) (uint64, error) {
	memInfo, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get memory information: %w", err)
	}
	return memInfo.Total, nil
}

// LoadHostProperties derives platform properties from the running host:
// the CPU model name stands in for the board platform and the OS platform
// for the device model. Whatever could be read is returned together with
// the errors for the rest.
func LoadHostProperties(ctx context.Context) (MapProperties, error) {
	props := MapProperties{}
	var errs []error

	cpuInfo, err := cpu.InfoWithContext(ctx)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("failed to get CPU information: %w", err))
	case len(cpuInfo) > 0 && cpuInfo[0].ModelName != "":
		props[devspec.PropertyPlatform] = strings.TrimSpace(cpuInfo[0].ModelName)
	}

	hostInfo, err := host.InfoWithContext(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("failed to get host information: %w", err))
	} else if model := strings.TrimSpace(hostInfo.Platform + " " + hostInfo.PlatformVersion); model != "" {
		props[devspec.PropertyDeviceModel] = model
	}

	return props, errors.Join(errs...)
}
