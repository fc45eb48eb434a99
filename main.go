package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/mdobak/go-xerrors"

	"github.com/soocke/blob-follower/app"
	"github.com/soocke/blob-follower/config"
	"github.com/soocke/blob-follower/debug"
	"github.com/soocke/blob-follower/domain/flight"
)

const (
	windowWidth  = 1000
	windowHeight = 760
)

func main() {
	_ = godotenv.Load()

	cfgPath := flag.String("config", "follower.json", "path to the JSON config file")
	debugFlag := flag.Bool("debug", false, "debug logging and runtime stats")
	headless := flag.Bool("headless", false, "run without a window; keys are read from the terminal")
	source := flag.String("source", "", "frame source: camera or screen")
	device := flag.String("device", "", "camera index, video file or stream URL")
	actuator := flag.String("actuator", "", "actuator: tello or dryrun")
	camera := flag.String("camera", "", "startup camera profile: front or bottom")
	latch := flag.Bool("latch", false, "keep undriven axes between frames")
	flag.Parse()

	cfg, cfgErr := config.Load(*cfgPath)
	cfg.ApplyEnv(os.LookupEnv)
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "debug":
			cfg.Debug = *debugFlag
		case "headless":
			cfg.Headless = *headless
		case "source":
			cfg.Source = *source
		case "device":
			cfg.CameraDevice = *device
		case "actuator":
			cfg.Actuator = *actuator
		case "camera":
			cfg.Camera = *camera
		case "latch":
			cfg.LatchAxes = *latch
		}
	})
	_ = cfg.Validate()

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(os.Stdout, level)
	if cfgErr != nil {
		logger.Warn("config load failed, using defaults", "path", *cfgPath, slog.Any("error", cfgErr))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if cfg.Debug {
		debug.StartRuntimeLogger(ctx, 5*time.Second, logger)
	}

	c, err := app.BuildContainer(cfg, *cfgPath, logger)
	if err != nil {
		fatal(ctx, logger, "Failed to start follower.", err)
	}
	logger.Info("follower started",
		"source", cfg.Source,
		"actuator", cfg.Actuator,
		"headless", cfg.Headless,
		"camera", cfg.Camera,
		"latch_axes", cfg.LatchAxes,
	)
	fmt.Println("Keys:")
	for _, line := range flight.KeyHelp() {
		fmt.Println("  " + line)
	}

	if cfg.Headless {
		err = app.RunHeadless(ctx, c)
	} else {
		err = app.NewDesktop(c, windowWidth, windowHeight).Run()
	}
	if err != nil {
		fatal(ctx, logger, "Shutdown failed.", err)
	}
}

func fatal(ctx context.Context, logger *slog.Logger, msg string, err error) {
	err = xerrors.New(err)
	logger.ErrorContext(ctx, msg, slog.Any("error", err))
	os.Exit(1)
}
