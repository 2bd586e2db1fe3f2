package sysinfo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePowerProfile = `<?xml version="1.0" encoding="utf-8"?>
<device name="Android">
  <item name="screen.on">0.1</item>
  <item name="battery.capacity"> 4500.4 </item>
  <array name="cpu.clusters.cores">
    <value>4</value>
  </array>
</device>
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestPowerProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "power_profile.xml")
	writeFile(t, path, samplePowerProfile)

	capacity, err := PowerProfile{Path: path}.DesignCapacityMAh(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 4500.4, capacity, 1e-9)
}

func TestPowerProfile_Errors(t *testing.T) {
	_, err := PowerProfile{}.DesignCapacityMAh(context.Background())
	assert.ErrorIs(t, err, ErrNoBattery)

	_, err = PowerProfile{Path: filepath.Join(t.TempDir(), "missing.xml")}.DesignCapacityMAh(context.Background())
	assert.Error(t, err)

	_, err = parsePowerProfile([]byte(`<device><item name="screen.on">0.1</item></device>`))
	assert.ErrorContains(t, err, "battery.capacity")

	_, err = parsePowerProfile([]byte(`<device><item name="battery.capacity">lots</item></device>`))
	assert.Error(t, err)

	_, err = parsePowerProfile([]byte(`not xml`))
	assert.Error(t, err)
}

func TestPowerSupply_ChargeFullDesign(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "class/power_supply/AC/type"), "Mains\n")
	writeFile(t, filepath.Join(root, "class/power_supply/BAT0/type"), "Battery\n")
	writeFile(t, filepath.Join(root, "class/power_supply/BAT0/charge_full_design"), "5000000\n")

	capacity, err := PowerSupply{Root: root}.DesignCapacityMAh(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 5000, capacity, 1e-9)
}

func TestPowerSupply_EnergyFullDesign(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "class/power_supply/BAT1/type"), "Battery\n")
	writeFile(t, filepath.Join(root, "class/power_supply/BAT1/energy_full_design"), "57000000\n")
	writeFile(t, filepath.Join(root, "class/power_supply/BAT1/voltage_min_design"), "11400000\n")

	capacity, err := PowerSupply{Root: root}.DesignCapacityMAh(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 5000, capacity, 1e-9)
}

func TestPowerSupply_NoBattery(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "class/power_supply/AC/type"), "Mains\n")

	_, err := PowerSupply{Root: root}.DesignCapacityMAh(context.Background())
	assert.ErrorIs(t, err, ErrNoBattery)
}

type fakeBattery struct {
	capacity float64
	err      error
}

func (f fakeBattery) DesignCapacityMAh(context.Context) (float64, error) {
	return f.capacity, f.err
}

func TestFirstBattery(t *testing.T) {
	ctx := context.Background()

	capacity, err := FirstBattery{
		fakeBattery{err: ErrNoBattery},
		fakeBattery{capacity: 0},
		fakeBattery{capacity: 4500},
		fakeBattery{capacity: 9999},
	}.DesignCapacityMAh(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4500.0, capacity)

	_, err = FirstBattery{fakeBattery{err: ErrNoBattery}}.DesignCapacityMAh(ctx)
	assert.ErrorIs(t, err, ErrNoBattery)

	broken := errors.New("permission denied")
	_, err = FirstBattery{fakeBattery{err: broken}, fakeBattery{err: ErrNoBattery}}.DesignCapacityMAh(ctx)
	assert.ErrorIs(t, err, broken)
}
