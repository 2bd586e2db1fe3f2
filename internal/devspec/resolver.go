// Package devspec turns raw hardware readings into marketed spec strings.
//
// Every field follows the same rule: a non-empty override is returned
// verbatim, otherwise the value is computed from the raw reading. Nothing in
// this package performs I/O or returns an error; unavailable readings arrive
// as zero values and resolve like any other.
package devspec

// Unknown is reported when no processor or device name source has a value.
const Unknown = "unknown"

// Property keys read by the collectors.
const (
	PropertyCPUModel    = "ro.everest.cpu"
	PropertyPlatform    = "ro.board.platform"
	PropertyDeviceModel = "ro.product.system.model"
)

func ResolveStorage(totalBytes uint64, override string) string {
	if override != "" {
		return override
	}
	return FormatStorage(BucketStorage(BytesToGB(totalBytes)))
}

func ResolveMemory(totalBytes uint64, override string) string {
	if override != "" {
		return override
	}
	return FormatMemory(BucketMemory(BytesToGB(totalBytes)))
}

// ResolveStorageAndMemory joins already resolved values as "<memory> | <storage>".
func ResolveStorageAndMemory(storage, memory string) string {
	return memory + " | " + storage
}

// ResolveProcessor returns the override, then the device specific property,
// then the platform property, then Unknown.
func ResolveProcessor(primary, fallback, override string) string {
	switch {
	case override != "":
		return override
	case primary != "":
		return primary
	case fallback != "":
		return fallback
	default:
		return Unknown
	}
}

func ResolveBattery(capacityMAh float64, override string) string {
	if override != "" {
		return override
	}
	return FormatBattery(capacityMAh)
}

func ResolveScreen(width, height, inset int, override string) string {
	if override != "" {
		return override
	}
	return FormatScreen(width, height, inset)
}

func ResolveDeviceName(model string) string {
	if model != "" {
		return model
	}
	return Unknown
}

// Resolve computes every field of the spec.
func Resolve(in Inputs, ov Overrides) ResolvedSpec {
	storage := ResolveStorage(in.StorageBytes, ov.Get(FieldStorage))
	memory := ResolveMemory(in.MemoryBytes, ov.Get(FieldMemory))

	return ResolvedSpec{
		DeviceName:       ResolveDeviceName(in.DeviceModel),
		Processor:        ResolveProcessor(in.CPUProperty, in.PlatformProperty, ov.Get(FieldProcessor)),
		StorageAndMemory: ResolveStorageAndMemory(storage, memory),
		Storage:          storage,
		Memory:           memory,
		Battery:          ResolveBattery(in.BatteryMAh, ov.Get(FieldBattery)),
		Screen:           ResolveScreen(in.Width, in.Height, in.Inset, ov.Get(FieldScreen)),
	}
}
