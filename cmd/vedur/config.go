package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/vedur-cli/vedur/internal/geo"
	"github.com/vedur-cli/vedur/internal/models"
)

const (
	envFileVar = "VEDUR_ENV_FILE"
	logPrefix  = "vedur"
)

// envBindings maps persistent flags to the environment variables that
// provide their defaults
var envBindings = []struct {
	flag string
	env  string
}{
	{"api-url", "VEDUR_API_URL"},
	{"geo", "VEDUR_GEO"},
	{"timeout", "VEDUR_TIMEOUT"},
	{"color", "VEDUR_COLOR"},
	{"debug", "VEDUR_DEBUG"},
}

// loadDotEnv loads VEDUR_ENV_FILE, or ./.env if present. Variables already
// set in the environment win.
func loadDotEnv(lookup func(string) (string, bool)) error {
	if path, ok := lookup(envFileVar); ok && path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		return nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// applyEnv sets every flag not given on the command line from its
// environment variable.
func applyEnv(cmd *cobra.Command, lookup func(string) (string, bool)) error {
	flags := cmd.Flags()
	for _, b := range envBindings {
		if flags.Lookup(b.flag) == nil || flags.Changed(b.flag) {
			continue
		}
		v, ok := lookup(b.env)
		if !ok || v == "" {
			continue
		}
		if err := flags.Set(b.flag, v); err != nil {
			return fmt.Errorf("invalid %s=%q: %w", b.env, v, err)
		}
	}
	return nil
}

// newLogger returns the debug logger and a func releasing it. Without a debug
// target logs are discarded. "-" logs to stderr, which the TUI owns, so in TUI
// mode every target goes through tea.LogToFile.
func newLogger(target string, tuiMode bool) (*log.Logger, func(), error) {
	nop := func() {}
	if target == "" {
		return log.New(io.Discard, "", 0), nop, nil
	}

	if tuiMode {
		if target == "-" {
			target = logPrefix + ".log"
		}
		f, err := tea.LogToFile(target, logPrefix)
		if err != nil {
			return nil, nop, fmt.Errorf("failed to open debug log: %w", err)
		}
		return log.Default(), func() { _ = f.Close() }, nil
	}

	if target == "-" {
		return log.New(os.Stderr, logPrefix+" ", log.LstdFlags), nop, nil
	}
	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nop, fmt.Errorf("failed to open debug log: %w", err)
	}
	return log.New(f, logPrefix+" ", log.LstdFlags), func() { _ = f.Close() }, nil
}

// buildLocator turns the --geo setting into a locator. "off" disables
// geolocation, "ip" looks the position up from the public IP, anything else
// must be fixed coordinates.
func buildLocator(setting string, logger *log.Logger) (geo.Locator, error) {
	switch strings.ToLower(strings.TrimSpace(setting)) {
	case "", "off", "none":
		return nil, nil
	case "ip":
		return geo.NewIPLocator(geo.WithIPLogger(logger)), nil
	}

	loc, err := models.ParseCoordinates(setting)
	if err != nil {
		return nil, fmt.Errorf("invalid --geo %q: want ip, off or LAT:LNG: %w", setting, err)
	}
	return geo.Static(geo.Position{Latitude: loc.Lat, Longitude: loc.Lng}), nil
}

// resolveLocation finds a built-in location by title, or parses coordinates.
func resolveLocation(locations []models.Location, arg string) (models.Location, error) {
	if loc, ok := models.FindLocation(locations, arg); ok {
		return loc, nil
	}
	loc, err := models.ParseCoordinates(arg)
	if err != nil {
		return models.Location{}, fmt.Errorf("unknown location %q (see 'vedur locations' or use LAT:LNG)", arg)
	}
	return loc, nil
}
