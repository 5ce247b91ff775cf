package main

/*------------------------------------------------------------------
 *
 * Purpose:   	Main program for irisd, the firmware core of a 12-channel
 *		RGB "iris" light ring, running as a host-side simulation:
 *
 *			BCM display engine under a real timer interrupt analogue.
 *			Cue interpolation and schedule timeline evaluator.
 *			Packed schedule byte encoding, NVRAM persistence.
 *			Framed serial protocol for host configuration exchange.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/freilite/iris/iris"
)

func main() {
	var cfg = iris.DefaultConfig()
	var fs = cfg.FlagSet()
	var configPath = fs.String("config", "", "Path to irisd.yaml configuration file.")
	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "irisd: %v\n", err)
		os.Exit(1)
	}

	if *configPath != "" {
		var loaded, err = iris.LoadConfigFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "irisd: loading config: %v\n", err)
			os.Exit(1)
		}

		// A flag given explicitly on the command line still wins over the
		// file; fs.Changed reports exactly that, since every field already
		// holds its flag-parsed (or still-default) value at this point.
		if !fs.Changed("serial-device") {
			cfg.SerialDevice = loaded.SerialDevice
		}
		if !fs.Changed("baud") {
			cfg.Baud = loaded.Baud
		}
		if !fs.Changed("nvram-path") {
			cfg.NVRAMPath = loaded.NVRAMPath
		}
		if !fs.Changed("nvram-size") {
			cfg.NVRAMSize = loaded.NVRAMSize
		}
		if !fs.Changed("timer-prescaler") {
			cfg.TimerPrescaler = loaded.TimerPrescaler
		}
		if !fs.Changed("loop-unroll") {
			cfg.LoopUnroll = loaded.LoopUnroll
		}
		if !fs.Changed("log-level") {
			cfg.LogLevel = loaded.LogLevel
		}
	}

	var logger = iris.NewLogger(os.Stderr, iris.ParseLevel(cfg.LogLevel))
	logger.Info("starting", "serial_device", cfg.SerialDevice, "nvram_path", cfg.NVRAMPath)

	var store = iris.NewStore(logger)

	var nv *iris.NVRAMFile
	var err error
	nv, err = iris.OpenNVRAMFile(cfg.NVRAMPath, cfg.NVRAMSize)
	if err != nil {
		logger.Fatal("opening nvram file", "err", err)
	}
	defer nv.Close()

	if err := nv.Load(store); err != nil {
		logger.Warn("loading nvram contents", "err", err)
	}

	var frame iris.DisplayedFrame
	var timer = newSoftwareTimer()
	var gpio = newLoggedGPIOPort(logger)
	var driver = iris.NewBcmDriver(timer, gpio, &frame)

	var ring = iris.NewRing(store, driver, logger, 0)

	// Emulates the timer output-compare interrupt driving BcmDriver.Step.
	// Reproducing the real hardware's exact variable-length interrupt
	// pacing is boot/platform glue and out of scope; this goroutine's
	// only job is to keep calling Step as fast as the host allows, which
	// exercises the same algorithm (including the adaptive correction)
	// without claiming hardware-accurate timing.
	var stopBcm = make(chan struct{})
	go func() {
		for {
			select {
			case <-stopBcm:
				return
			default:
				driver.Step()
			}
		}
	}()
	defer close(stopBcm)

	var mainTicker = time.NewTicker(16 * time.Millisecond)
	defer mainTicker.Stop()
	var start = time.Now()

	if cfg.SerialDevice != "" {
		transport, err := iris.OpenSerialTransport(cfg.SerialDevice, cfg.Baud)
		if err != nil {
			logger.Error("opening serial device", "err", err)
		} else {
			defer transport.Close()
			var proto = &iris.SerialProto{
				Transport: transport,
				Codec:     nil, // supplied externally; see iris.MessageCodec
				Store:     store,
				Logger:    logger,
			}
			_ = proto
			logger.Warn("serial protocol requires an externally-supplied MessageCodec; not started")
		}
	}

	for range mainTicker.C {
		var elapsed = time.Since(start)
		ring.Tick(uint32(elapsed.Milliseconds()))
	}
}
