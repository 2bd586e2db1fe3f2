package sysinfo

import "context"

// StorageSource reports the total size of the primary data partition.
type StorageSource interface {
	TotalStorageBytes(ctx context.Context) (uint64, error)
}

// MemorySource reports total physical memory.
type MemorySource interface {
	TotalMemoryBytes(ctx context.Context) (uint64, error)
}

// PropertySource is a platform property store. Absent keys return "".
type PropertySource interface {
	Property(key string) string
}

// BatterySource reports the battery design capacity in mAh.
type BatterySource interface {
	DesignCapacityMAh(ctx context.Context) (float64, error)
}

// DisplaySource reports the content area of the default display and the
// height of any system inset (navigation bar) outside it.
type DisplaySource interface {
	DisplaySize(ctx context.Context) (width, height int, err error)
	DisplayInset(ctx context.Context) (int, error)
}
