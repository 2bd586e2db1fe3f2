package sysinfo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProperties(t *testing.T) {
	props, err := ParseProperties(
		"# board",
		"ro.board.platform=sm8550",
		"",
		"ro.product.system.model=Everest One",
	)
	require.NoError(t, err)

	assert.Equal(t, "sm8550", props.Property("ro.board.platform"))
	assert.Equal(t, "Everest One", props.Property("ro.product.system.model"))
	assert.Equal(t, "", props.Property("ro.everest.cpu"))
}

func TestParseProperties_LiteralValues(t *testing.T) {
	props, err := ParseProperties(
		"ro.everest.cpu=Tensor $G3 'x'",
		"ro.product.system.model=Pixel # 8",
		"  ro.board.platform = gs301  ",
		"ro.build.fingerprint=google/husky/husky:14/UD1A.230803.041:user/release-keys",
		"not a property",
		"=orphan",
	)
	require.NoError(t, err)

	assert.Equal(t, "Tensor $G3 'x'", props.Property("ro.everest.cpu"))
	assert.Equal(t, "Pixel # 8", props.Property("ro.product.system.model"))
	assert.Equal(t, "gs301", props.Property("ro.board.platform"))
	assert.Equal(t, "google/husky/husky:14/UD1A.230803.041:user/release-keys", props.Property("ro.build.fingerprint"))
	assert.Len(t, props, 4)
}

const buildProp = `
####################################
# from generate-common-build-props
# These properties identify this partition image.
####################################
ro.product.system.brand=everest
ro.product.system.model=Everest One
ro.system.build.version.incremental=eng.build.20240101
# end of file

import /vendor/build.prop
import /odm/etc/build_${ro.boot.product.hardware.sku}.prop

dalvik.vm.dex2oat-Xms=64m
dalvik.vm.dex2oat-Xmx=512m
dalvik.vm.image-dex2oat-filter=verify
persist.sys.dalvik.vm.lib.2=libart.so
ro.board.platform=kalama
ro.everest.cpu=Snapdragon 8 Gen 2
ro.config.ringtone=Ring_Synth_04.ogg
ro.com.google.clientidbase=android-$(vendor)
`

func TestLoadPropertyFiles_BuildProp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.prop")
	require.NoError(t, os.WriteFile(path, []byte(buildProp), 0o644))

	props, err := LoadPropertyFiles(path)
	require.NoError(t, err)

	assert.Equal(t, "kalama", props.Property("ro.board.platform"))
	assert.Equal(t, "Snapdragon 8 Gen 2", props.Property("ro.everest.cpu"))
	assert.Equal(t, "Everest One", props.Property("ro.product.system.model"))
	assert.Equal(t, "64m", props.Property("dalvik.vm.dex2oat-Xms"))
	assert.Equal(t, "android-$(vendor)", props.Property("ro.com.google.clientidbase"))
	assert.NotContains(t, props, "import")
	assert.NotContains(t, props, "import /vendor/build.prop")
}

func TestLoadPropertyFiles_CRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.prop")
	require.NoError(t, os.WriteFile(path, []byte("ro.board.platform=sm8550\r\nro.everest.cpu=Snapdragon\r\n"), 0o644))

	props, err := LoadPropertyFiles(path)
	require.NoError(t, err)
	assert.Equal(t, "sm8550", props.Property("ro.board.platform"))
	assert.Equal(t, "Snapdragon", props.Property("ro.everest.cpu"))
}

func TestLoadPropertyFiles_LaterFileWins(t *testing.T) {
	dir := t.TempDir()
	system := filepath.Join(dir, "build.prop")
	vendor := filepath.Join(dir, "vendor.prop")
	require.NoError(t, os.WriteFile(system, []byte("ro.board.platform=kalama\nro.product.system.model=Everest One\n"), 0o644))
	require.NoError(t, os.WriteFile(vendor, []byte("ro.board.platform=sm8550\n"), 0o644))

	props, err := LoadPropertyFiles(system, vendor)
	require.NoError(t, err)

	assert.Equal(t, "sm8550", props.Property("ro.board.platform"))
	assert.Equal(t, "Everest One", props.Property("ro.product.system.model"))
}

func TestLoadPropertyFiles_MissingFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "build.prop")
	require.NoError(t, os.WriteFile(good, []byte("ro.board.platform=sm8550\n"), 0o644))

	props, err := LoadPropertyFiles(good, filepath.Join(dir, "missing.prop"))
	assert.Error(t, err)
	assert.Equal(t, "sm8550", props.Property("ro.board.platform"))
}

func TestChainProperties(t *testing.T) {
	chain := ChainProperties{
		MapProperties{"ro.everest.cpu": ""},
		nil,
		MapProperties{"ro.everest.cpu": "Snapdragon 8 Gen 2", "ro.board.platform": "kalama"},
		MapProperties{"ro.board.platform": "sm8550"},
	}

	assert.Equal(t, "Snapdragon 8 Gen 2", chain.Property("ro.everest.cpu"))
	assert.Equal(t, "kalama", chain.Property("ro.board.platform"))
	assert.Equal(t, "", chain.Property("ro.product.system.model"))
	assert.Equal(t, "", ChainProperties(nil).Property("ro.board.platform"))
}
