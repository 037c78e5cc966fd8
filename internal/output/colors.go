package output

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorMode represents the color output mode
type ColorMode int

const (
	// ColorAuto enables colors if output is a TTY
	ColorAuto ColorMode = iota
	// ColorAlways forces colors on
	ColorAlways
	// ColorNever disables colors
	ColorNever
)

// Colors holds the color functions for different output types
type Colors struct {
	Title         func(format string, a ...interface{}) string
	Header        func(format string, a ...interface{}) string
	Hour          func(format string, a ...interface{}) string
	Warm          func(format string, a ...interface{}) string
	Cold          func(format string, a ...interface{}) string
	Precipitation func(format string, a ...interface{}) string
	Loading       func(format string, a ...interface{}) string
	Error         func(format string, a ...interface{}) string
	Muted         func(format string, a ...interface{}) string
}

// NewColors creates a new Colors instance based on the color mode
func NewColors(mode ColorMode) *Colors {
	useColors := false
	switch mode {
	case ColorAlways:
		useColors = true
		color.NoColor = false // Force colors on
	case ColorNever:
		useColors = false
	case ColorAuto:
		useColors = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	if !useColors {
		noColor := func(format string, a ...interface{}) string {
			if len(a) == 0 {
				return format
			}
			return fmt.Sprintf(format, a...)
		}
		return &Colors{
			Title:         noColor,
			Header:        noColor,
			Hour:          noColor,
			Warm:          noColor,
			Cold:          noColor,
			Precipitation: noColor,
			Loading:       noColor,
			Error:         noColor,
			Muted:         noColor,
		}
	}

	return &Colors{
		Title:         color.New(color.FgCyan, color.Bold).SprintfFunc(),
		Header:        color.New(color.FgWhite, color.Bold).SprintfFunc(),
		Hour:          color.New(color.FgWhite, color.Bold).SprintfFunc(),
		Warm:          color.New(color.FgYellow).SprintfFunc(),
		Cold:          color.New(color.FgCyan).SprintfFunc(),
		Precipitation: color.New(color.FgBlue).SprintfFunc(),
		Loading:       color.New(color.FgYellow, color.Italic).SprintfFunc(),
		Error:         color.New(color.FgRed).SprintfFunc(),
		Muted:         color.New(color.FgHiBlack).SprintfFunc(),
	}
}

// Temperature picks the warm or cold color for a temperature in °C
func (c *Colors) Temperature(celsius float64) func(format string, a ...interface{}) string {
	if celsius > 0 {
		return c.Warm
	}
	return c.Cold
}

// ParseColorMode parses a color mode string
func ParseColorMode(s string) ColorMode {
	switch s {
	case "always":
		return ColorAlways
	case "never":
		return ColorNever
	default:
		return ColorAuto
	}
}
