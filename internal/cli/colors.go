package cli

import (
	"fmt"
	"os"
	"strings"
)

const (
	ResetCode = "\033[0m"
	DimCode   = "\033[2m"

	Reset  = ResetCode
	Bold   = "\033[1m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Purple = "\033[35m"
	Cyan   = "\033[36m"
)

// RGB represents a TrueColor
type RGB struct {
	R, G, B float64
}

var (
	BrandBlue   = RGB{0, 120, 255}
	BrandPurple = RGB{189, 52, 235}
)

var colorEnabled = !noColor()

func noColor() bool {
	_, exists := os.LookupEnv("NO_COLOR")
	return exists
}

// Enabled reports whether ANSI colors are written.
func Enabled() bool {
	return colorEnabled
}

// SetEnabled overrides the NO_COLOR detection, e.g. from log.color.
func SetEnabled(enabled bool) {
	colorEnabled = enabled && !noColor()
}

// Style wraps text in a specific color code
func Style(text string, colorCode string) string {
	if !colorEnabled {
		return text
	}
	return colorCode + text + ResetCode
}

// ColorizeRGB returns text wrapped in ANSI TrueColor escape codes
func ColorizeRGB(text string, c RGB) string {
	if !colorEnabled {
		return text
	}
	return fmt.Sprintf("\033[38;2;%d;%d;%dm%s%s", int(c.R), int(c.G), int(c.B), text, ResetCode)
}

// Gradient colors text with the linear interpolation between start and end at progress (0.0 to 1.0).
func Gradient(text string, start, end RGB, progress float64) string {
	r := start.R + (end.R-start.R)*progress
	g := start.G + (end.G-start.G)*progress
	b := start.B + (end.B-start.B)*progress

	return ColorizeRGB(text, RGB{r, g, b})
}

// Banner renders the startup banner, one gradient step per line.
func Banner(version string) string {
	lines := []string{
		"  ┌─┐┬─┐┌─┐┌┬┐┌─┐┌┬┐  ┬─┐┌─┐┬ ┬┌┬┐┌─┐┬─┐",
		"  ├─┘├┬┘│ ││││├─┘ │   ├┬┘│ ││ │ │ ├┤ ├┬┘",
		"  ┴  ┴└─└─┘┴ ┴┴   ┴   ┴└─└─┘└─┘ ┴ └─┘┴└─",
	}

	var sb strings.Builder
	for i, line := range lines {
		sb.WriteString(Gradient(line, BrandBlue, BrandPurple, float64(i)/float64(len(lines)-1)))
		sb.WriteByte('\n')
	}
	sb.WriteString(Style("  "+version, DimCode))
	sb.WriteByte('\n')
	return sb.String()
}

func CheckMark() string {
	return Style("✔", Green)
}

func Arrow() string {
	return Style("➜", Blue)
}

func CrossMark() string {
	return Style("✘", Red)
}

func WarningSign() string {
	return Style("⚠", Yellow)
}
