package iris

/*------------------------------------------------------------------
 *
 * Purpose:	Config is the one non-spec surface cmd/irisd needs to know
 *		which real device it is talking to: where the serial port
 *		and NVRAM file live, the timer prescaler and loop-unroll
 *		tuning, and the console log level.
 *
 * Description:	Loaded from a YAML file with yaml.v3, the same library the
 *		teacher codebase uses for its own device-identification
 *		table; individual fields can be overridden from the command
 *		line with pflag, again following the teacher's own flag-set
 *		conventions.
 *
 *---------------------------------------------------------------*/

import (
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config is the YAML-loadable device configuration for cmd/irisd.
type Config struct {
	SerialDevice   string `yaml:"serial_device"`
	Baud           int    `yaml:"baud"`
	NVRAMPath      string `yaml:"nvram_path"`
	NVRAMSize      int    `yaml:"nvram_size"`
	TimerPrescaler int    `yaml:"timer_prescaler"`
	LoopUnroll     int    `yaml:"loop_unroll"`
	LogLevel       string `yaml:"log_level"`
}

// DefaultConfig returns the configuration used when no file is supplied and
// no flags override it.
func DefaultConfig() Config {
	return Config{
		SerialDevice:   "",
		Baud:           115200,
		NVRAMPath:      "irisd.nvram",
		NVRAMSize:      4096,
		TimerPrescaler: 1,
		LoopUnroll:     BCMLoopUnrollAmount,
		LogLevel:       "info",
	}
}

// LoadConfigFile reads and parses a YAML config file, starting from
// DefaultConfig so any field the file omits keeps its default.
func LoadConfigFile(path string) (Config, error) {
	var cfg = DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// FlagSet builds the pflag.FlagSet cmd/irisd parses, pre-populated with
// cfg's current values as defaults so an unset flag leaves the loaded (or
// default) value untouched.
func (cfg *Config) FlagSet() *pflag.FlagSet {
	var fs = pflag.NewFlagSet("irisd", pflag.ContinueOnError)
	fs.StringVar(&cfg.SerialDevice, "serial-device", cfg.SerialDevice, "Serial device path, e.g. /dev/ttyUSB0.")
	fs.IntVar(&cfg.Baud, "baud", cfg.Baud, "Serial baud rate.")
	fs.StringVar(&cfg.NVRAMPath, "nvram-path", cfg.NVRAMPath, "Path to the NVRAM-backed store file.")
	fs.IntVar(&cfg.NVRAMSize, "nvram-size", cfg.NVRAMSize, "Maximum NVRAM store size in bytes.")
	fs.IntVar(&cfg.TimerPrescaler, "timer-prescaler", cfg.TimerPrescaler, "BCM timer prescaler (stored in the config; BcmDriver does not read it).")
	fs.IntVar(&cfg.LoopUnroll, "loop-unroll", cfg.LoopUnroll, "BCM loop-unroll amount (stored in the config; BcmDriver always uses BCMLoopUnrollAmount).")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error).")
	return fs
}
