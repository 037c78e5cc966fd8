package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/vedur-cli/vedur/internal/api"
	"github.com/vedur-cli/vedur/internal/geo"
	"github.com/vedur-cli/vedur/internal/models"
	"github.com/vedur-cli/vedur/internal/output"
	"github.com/vedur-cli/vedur/internal/search"
	"github.com/vedur-cli/vedur/internal/tui"
)

var version = "0.1.0"

// errSearchFailed is returned when a search settled in the error state. The
// message has already been printed.
var errSearchFailed = errors.New("search failed")

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errSearchFailed) {
			_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vedur",
	Short: "Hourly temperature and precipitation forecast for the day",
	Long: `vedur shows today's hourly temperature and precipitation forecast
for a location, using the Open-Meteo forecast API.

Pick one of the built-in locations, enter coordinates, or use your own
location (looked up from your public IP once you allow it).

Quick Start:
  1. Launch TUI:               vedur (or vedur tui)
  2. List locations:           vedur locations
  3. Forecast for a location:  vedur forecast Reykjavík
  4. Forecast for coordinates: vedur forecast 64.1355:-21.8954
  5. Forecast where you are:   vedur here

Configuration:
  Flags take precedence over VEDUR_API_URL, VEDUR_GEO, VEDUR_TIMEOUT,
  VEDUR_COLOR and VEDUR_DEBUG, which may also be set in a .env file
  (or the file named by VEDUR_ENV_FILE).`,
	Version:           version,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		// If no subcommand is provided, launch TUI
		if len(args) == 0 {
			return runTUI(cmd, args)
		}
		return cmd.Help()
	},
}

// Global flags
var (
	flagJSON    bool
	flagRawJSON bool
	flagColor   string
	flagGeo     string
	flagTimeout time.Duration
	flagAPIURL  string
	flagDebug   string
)

// Here flags
var flagYes bool

func init() {
	// Add subcommands
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(locationsCmd)
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(hereCmd)

	// Global flags
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagRawJSON, "raw-json", false, "Output raw API response")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto", "Color output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&flagGeo, "geo", "ip", "Geolocation source: ip, off, or fixed LAT:LNG")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 10*time.Second, "Timeout for each forecast lookup")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", api.BaseURL, "Forecast API base URL")
	rootCmd.PersistentFlags().StringVar(&flagDebug, "debug", "", "Write debug log to file (- for stderr)")

	// Here-specific flags
	hereCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Allow the location lookup without asking")
}

// loadConfig fills flags not set on the command line from the environment
func loadConfig(cmd *cobra.Command, args []string) error {
	if err := loadDotEnv(os.LookupEnv); err != nil {
		return err
	}
	return applyEnv(cmd, os.LookupEnv)
}

// createClient creates an API client with common options
func createClient(logger *log.Logger) (*api.Client, error) {
	return api.NewClient(
		api.WithBaseURL(flagAPIURL),
		api.WithTimeout(flagTimeout),
		api.WithUserAgent("vedur/"+version),
		api.WithLogger(logger),
	)
}

// getColorMode returns the color mode based on flag
func getColorMode() output.ColorMode {
	return output.ParseColorMode(flagColor)
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive full-screen TUI",
	Long: `Launch an interactive full-screen terminal UI for picking a location
and browsing its forecast.

Keyboard:
  j/k or arrows  Navigate locations
  Enter          Search the forecast
  /              Enter coordinates (LAT:LNG)
  Tab            Scroll the forecast table
  y/n            Answer the location permission prompt
  q              Quit`,
	RunE: runTUI,
}

var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "List the built-in locations",
	Args:  cobra.NoArgs,
	RunE:  runLocations,
}

var forecastCmd = &cobra.Command{
	Use:   "forecast <title|lat:lng>",
	Short: "Show the forecast for a location",
	Long: `Show today's hourly forecast for a built-in location or coordinates.

Titles match ignoring case and accents.

Examples:
  vedur forecast Reykjavík
  vedur forecast "new york"
  vedur forecast 35.6764:139.65
  vedur forecast tokyo --json`,
	Args: cobra.ExactArgs(1),
	RunE: runForecast,
}

var hereCmd = &cobra.Command{
	Use:   "here",
	Short: "Show the forecast for your location",
	Long: `Show today's hourly forecast for your current location.

The position comes from --geo (default: looked up from your public IP).
You are asked before the lookup when running in a terminal; otherwise
pass --yes to allow it.

Examples:
  vedur here
  vedur here --yes --json
  vedur here --geo 64.1355:-21.8954`,
	Args: cobra.NoArgs,
	RunE: runHere,
}

func runTUI(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(flagDebug, true)
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := createClient(logger)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	locator, err := buildLocator(flagGeo, logger)
	if err != nil {
		return err
	}

	ctrlOpts := []search.Option{search.WithLogger(logger)}
	tuiOpts := []tui.Option{tui.WithRequestTimeout(flagTimeout)}
	if locator != nil {
		gate := geo.NewGate()
		ctrlOpts = append(ctrlOpts, search.WithLocator(geo.Gated(locator, gate)))
		tuiOpts = append(tuiOpts, tui.WithGate(gate))
	}

	ctrl := search.New(client, ctrlOpts...)
	model := tui.New(ctrl, models.DefaultLocations(), tuiOpts...)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func runLocations(cmd *cobra.Command, args []string) error {
	locations := models.DefaultLocations()

	// JSON output
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(locations)
	}

	// Text output with colors
	colors := output.NewColors(getColorMode())
	output.RenderLocations(os.Stdout, locations, output.TableOptions{
		Colors: colors,
	})
	return nil
}

func runForecast(cmd *cobra.Command, args []string) error {
	ctx, stop := output.SignalContext(cmd.Context())
	defer stop()

	loc, err := resolveLocation(models.DefaultLocations(), args[0])
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(flagDebug, false)
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := createClient(logger)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	// Raw JSON output
	if flagRawJSON {
		raw, err := client.WeatherSearchRaw(ctx, loc.Lat, loc.Lng)
		if err != nil {
			return err
		}
		return printPrettyJSON(raw)
	}

	ctrl := search.New(client, search.WithLogger(logger))
	return runOneShot(ctx, ctrl, ctrl.Search(loc))
}

func runHere(cmd *cobra.Command, args []string) error {
	ctx, stop := output.SignalContext(cmd.Context())
	defer stop()

	logger, closeLog, err := newLogger(flagDebug, false)
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := createClient(logger)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	locator, err := buildLocator(flagGeo, logger)
	if err != nil {
		return err
	}

	ctrlOpts := []search.Option{search.WithLogger(logger)}
	if locator != nil {
		gate := geo.NewGate()
		askPermission(gate, os.Stdin, os.Stderr)
		locator = geo.Gated(locator, gate)
		ctrlOpts = append(ctrlOpts, search.WithLocator(locator))
	}

	// Raw JSON output
	if flagRawJSON {
		if locator == nil {
			return errors.New(search.MsgGeoUnsupported)
		}
		res := <-geo.Request(ctx, locator)
		if res.Err != nil {
			return fmt.Errorf("%s: %w", search.MsgGeoFailed, res.Err)
		}
		raw, err := client.WeatherSearchRaw(ctx, res.Position.Latitude, res.Position.Longitude)
		if err != nil {
			return err
		}
		return printPrettyJSON(raw)
	}

	ctrl := search.New(client, ctrlOpts...)
	return runOneShot(ctx, ctrl, ctrl.SearchMyLocation())
}

// askPermission decides the location gate: --yes grants it, a terminal is
// asked, and anything else denies it.
func askPermission(gate *geo.Gate, in *os.File, out io.Writer) {
	switch {
	case flagYes:
		gate.Grant()
	case isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd()):
		if promptYesNo(in, out, "Allow looking up your location? [y/N] ") {
			gate.Grant()
		} else {
			gate.Deny()
		}
	default:
		_, _ = fmt.Fprintln(out, "Not a terminal: pass --yes to allow the location lookup.")
		gate.Deny()
	}
}

// promptYesNo writes question to out and reports whether the answer read
// from in starts with y.
func promptYesNo(in io.Reader, out io.Writer, question string) bool {
	_, _ = fmt.Fprint(out, question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// runOneShot runs req to completion and prints the settled state. An error
// state yields errSearchFailed so the process exits non-zero.
func runOneShot(ctx context.Context, ctrl *search.Controller, req *search.Request) error {
	interactive := !flagJSON && isatty.IsTerminal(os.Stdout.Fd())

	var status *output.Status
	if interactive && req != nil {
		status = output.NewStatus(os.Stdout)
		status.Show(output.LoadingText)
	}

	state := ctrl.Do(ctx, req)

	if status != nil {
		status.Clear()
	}

	if err := printState(os.Stdout, state); err != nil {
		return err
	}
	if state.Kind == search.KindError {
		return errSearchFailed
	}
	return nil
}

// printState writes the result area as JSON or text
func printState(w io.Writer, state search.State) error {
	if flagJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(state)
	}

	output.RenderState(w, state, output.TableOptions{
		Colors: output.NewColors(getColorMode()),
	})
	return nil
}

func printPrettyJSON(data []byte) error {
	var prettyJSON interface{}
	if err := json.Unmarshal(data, &prettyJSON); err != nil {
		// If we can't parse it, just print raw
		fmt.Println(string(data))
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(prettyJSON)
}
