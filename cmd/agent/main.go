// Package main implements the USB peripheral manager: a long-running agent
// that enumerates attached USB devices and writes an inventory snapshot
// into the shared buffer directory on a fixed interval.
package main

import (
	"context"
	_ "embed"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"usbagent/internal/config"
	"usbagent/internal/inventory"
	"usbagent/internal/usbscan"
)

// gracePeriod is how long the process lingers after a failed USB context
// acquisition so logs can flush before the deliberate exit 0.
const gracePeriod = 10 * time.Second

//go:embed config.yaml
var defaultConfig []byte

var (
	configPath = flag.String("config", "", "Path to a YAML config file (defaults are built in)")
	interval   = flag.Duration("interval", 30*time.Second, "Delay between scan passes")
	once       = flag.Bool("once", false, "Run a single scan pass and exit")
	debug      = flag.Bool("debug", false, "Enable debug logging")
)

func main() {
	flag.Parse()

	log := logrus.StandardLogger()
	if *debug {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.Load(*configPath, defaultConfig)
	if err != nil {
		log.WithError(err).Fatal("Unable to load configuration")
	}

	log.Info("Peripheral Manager USB has started")

	usbCtx, err := usbscan.Acquire()
	if err != nil {
		// Not a crash: this host simply has nothing for us to monitor.
		log.WithError(err).Warn("Unable to initialize USB discovery. " +
			"Host might be incompatible with this peripheral manager.")
		time.Sleep(gracePeriod)
		os.Exit(0)
	}
	defer func() {
		// The process is exiting either way.
		_ = usbCtx.Close()
	}()

	store, err := inventory.NewStore(cfg.BufferDir())
	if err != nil {
		log.WithError(err).Fatal("Unable to create the peripheral buffer directory")
	}
	log.Infof("Writing USB snapshots to %s every %v", cfg.BufferDir(), *interval)

	scanner := &usbscan.Scanner{
		Source:   usbscan.ContextSource{Ctx: usbCtx},
		Attrs:    usbscan.UdevResolver{},
		VideoDir: cfg.VideoDir,
		Log:      log,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	for {
		runPass(ctx, log, scanner, store)
		if *once {
			return
		}
		select {
		case <-time.After(*interval):
		case <-sigChan:
			log.Info("Shutting down peripheral manager")
			return
		case <-ctx.Done():
			return
		}
	}
}

// runPass executes one scan/write cycle. Every failure below directory
// creation is tolerated: the snapshot is written as collected, errors are
// logged, and the next pass starts from scratch.
func runPass(ctx context.Context, log *logrus.Logger, scanner *usbscan.Scanner, store *inventory.Store) {
	passLog := log.WithField("pass", uuid.NewString()[:8])
	start := time.Now()

	snapshot, err := scanner.Scan(ctx)
	if err != nil {
		passLog.WithError(err).Error("A problem occurred while listing the USB peripherals. Continuing...")
	}
	passLog.Debugf("Scan finished in %v with %d devices", time.Since(start), len(snapshot))

	path, err := store.Write(time.Now(), snapshot)
	if err != nil {
		passLog.WithError(err).Error("Unable to save the peripheral snapshot")
		return
	}
	passLog.Infof("Saved %d USB peripherals to %s", len(snapshot), path)
}
