package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OldStager01/fatigue-monitor/internal/logger"
	"github.com/OldStager01/fatigue-monitor/internal/simulator"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	apiURL := flag.String("api", "http://localhost:8080", "base URL of the monitor API")
	username := flag.String("username", "", "account username")
	password := flag.String("password", "", "account password")
	token := flag.String("token", "", "bearer token (skips login)")
	profile := flag.String("profile", "workday", "usage profile: workday, night_owl, doomscroller")
	laptopDevice := flag.String("laptop-device", "", "laptop device id")
	mobileDevice := flag.String("mobile-device", "", "mobile device id")
	interval := flag.Duration("interval", 5*time.Minute, "reporting interval")
	seed := flag.Int64("seed", 0, "rng seed, 0 for time-based")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	logger.Setup(*logLevel, "development")

	authToken := *token
	if authToken == "" {
		if *username == "" || *password == "" {
			return fmt.Errorf("either -token or -username and -password are required")
		}

		loginCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		t, err := simulator.Login(loginCtx, *apiURL, *username, *password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		authToken = t
	}

	p := simulator.ParseProfile(*profile)
	logger.Infof("Starting usage simulator with %s profile, reporting every %s", p.Name(), *interval)

	generator := simulator.NewGenerator(p, *seed)
	reporter := simulator.NewReporter(*apiURL, authToken)
	runner := simulator.NewRunner(generator, reporter, *laptopDevice, *mobileDevice, *interval)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runner.Run(ctx); err != nil && err != context.Canceled {
		return err
	}

	logger.Info("Simulator stopped")
	return nil
}
