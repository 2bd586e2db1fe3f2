package devspec

import (
	"fmt"
	"math"
)

// FormatStorage renders a bucketed storage size. Sizes of 1024 GB and up are
// shown in whole terabytes.
func FormatStorage(gb int) string {
	if gb >= 1024 {
		return fmt.Sprintf("%d TB", gb/1024)
	}
	return fmt.Sprintf("%d GB", gb)
}

// FormatMemory renders a bucketed memory size.
func FormatMemory(gb int) string {
	return fmt.Sprintf("%d GB", gb)
}

// FormatBattery renders a battery design capacity rounded to the nearest mAh.
func FormatBattery(mAh float64) string {
	if math.IsNaN(mAh) || math.IsInf(mAh, 0) || mAh < 0 {
		mAh = 0
	}
	return fmt.Sprintf("%d mAh", int64(math.Round(math.Min(mAh, maxReading))))
}

// FormatScreen renders "<width> x <height>", with the inset added to the height.
func FormatScreen(width, height, inset int) string {
	if inset < 0 {
		inset = 0
	}
	return fmt.Sprintf("%d x %d", width, height+inset)
}

// NavigationInset returns the height hidden from the usable display area,
// or 0 when the real height is not larger.
func NavigationInset(usableHeight, realHeight int) int {
	if realHeight > usableHeight {
		return realHeight - usableHeight
	}
	return 0
}
