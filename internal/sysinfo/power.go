package sysinfo

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
)

// ErrNoBattery is returned when no battery data source exists.
var ErrNoBattery = errors.New("no battery found")

const batteryCapacityItem = "battery.capacity"

// PowerProfile reads the design capacity from an Android power_profile.xml.
type PowerProfile struct {
	Path string
}

type powerProfileDoc struct {
	XMLName xml.Name `xml:"device"`
	Items   []struct {
		Name  string `xml:"name,attr"`
		Value string `xml:",chardata"`
	} `xml:"item"`
}

func (p PowerProfile) DesignCapacityMAh(_ context.Context) (float64, error) {
	if p.Path == "" {
		return 0, ErrNoBattery
	}

	data, err := os.ReadFile(p.Path)
	if err != nil {
		return 0, fmt.Errorf("failed to read power profile: %w", err)
	}
	return parsePowerProfile(data)
}

func parsePowerProfile(data []byte) (float64, error) {
	var doc powerProfileDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("failed to parse power profile: %w", err)
	}

	for _, item := range doc.Items {
		if item.Name != batteryCapacityItem {
			continue
		}
		capacity, err := cast.ToFloat64E(strings.TrimSpace(item.Value))
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", batteryCapacityItem, item.Value, err)
		}
		return capacity, nil
	}

	return 0, fmt.Errorf("power profile has no %s item", batteryCapacityItem)
}

// PowerSupply reads the design capacity of the first battery listed under
// <Root>/class/power_supply.
type PowerSupply struct {
	Root string
}

func (p PowerSupply) DesignCapacityMAh(_ context.Context) (float64, error) {
	supplies, err := filepath.Glob(filepath.Join(p.Root, "class", "power_supply", "*"))
	if err != nil {
		return 0, fmt.Errorf("failed to list power supplies: %w", err)
	}

	for _, dir := range supplies {
		if kind, _ := readSysfsString(filepath.Join(dir, "type")); kind != "Battery" {
			continue
		}

		// charge_* is in µAh.
		if charge, err := readSysfsFloat(filepath.Join(dir, "charge_full_design")); err == nil && charge > 0 {
			return charge / 1000, nil
		}

		// energy_* is in µWh, voltage_* in µV.
		energy, err := readSysfsFloat(filepath.Join(dir, "energy_full_design"))
		if err != nil || energy <= 0 {
			continue
		}
		voltage, err := readSysfsFloat(filepath.Join(dir, "voltage_min_design"))
		if err != nil || voltage <= 0 {
			continue
		}
		return energy / voltage * 1000, nil
	}

	return 0, ErrNoBattery
}

// FirstBattery tries each source in order and returns the first positive
// capacity.
type FirstBattery []BatterySource

func (f FirstBattery) DesignCapacityMAh(ctx context.Context) (float64, error) {
	var errs []error
	for _, src := range f {
		capacity, err := src.DesignCapacityMAh(ctx)
		if err == nil && capacity > 0 {
			return capacity, nil
		}
		if err != nil && !errors.Is(err, ErrNoBattery) {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return 0, errors.Join(errs...)
	}
	return 0, ErrNoBattery
}

func readSysfsString(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func readSysfsFloat(path string) (float64, error) {
	s, err := readSysfsString(path)
	if err != nil {
		return 0, err
	}
	return cast.ToFloat64E(s)
}
