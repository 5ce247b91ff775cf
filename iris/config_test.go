package iris

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_LoadConfigFile_OverridesDefaults(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "irisd.yaml")
	var contents = "serial_device: /dev/ttyUSB3\nbaud: 57600\nnvram_size: 2048\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	var cfg, err = LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyUSB3", cfg.SerialDevice)
	assert.Equal(t, 57600, cfg.Baud)
	assert.Equal(t, 2048, cfg.NVRAMSize)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Fields the file omits keep their defaults.
	assert.Equal(t, DefaultConfig().NVRAMPath, cfg.NVRAMPath)
	assert.Equal(t, DefaultConfig().TimerPrescaler, cfg.TimerPrescaler)
}

func Test_Config_FlagSet_OverridesField(t *testing.T) {
	var cfg = DefaultConfig()
	var fs = cfg.FlagSet()

	require.NoError(t, fs.Parse([]string{"--baud", "9600", "--log-level", "warn"}))

	assert.Equal(t, 9600, cfg.Baud)
	assert.Equal(t, "warn", cfg.LogLevel)
}
