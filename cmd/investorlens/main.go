package main

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/investorlens/investorlens/internal/logger"
	"github.com/investorlens/investorlens/internal/tui/theme"
	"github.com/spf13/cobra"
)

const (
	logoText1 = "█ █▄ █ █ █ █▀▀ █▀ ▀█▀ █▀█ █▀█ █   █▀▀ █▄ █ █▀"
	logoText2 = "█ █ ▀█ ▀▄▀ ██▄ ▄█  █  █▄█ █▀▄ █▄▄ ██▄ █ ▀█ ▄█"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "investorlens",
	Short: "Collect a startup profile and get an investor-style analysis",
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.Current()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	rootCmd.Long = renderLogo() + `

investorlens walks you through a four-step startup profile (basics, market,
business model, team), validates every answer and sends the record to an
analysis service for an investor-style assessment.

Profiles can also be validated and submitted headlessly from a YAML file.`

	rootCmd.PersistentFlags().StringVar(&globalFlags.baseURL, "base-url", "", "Analysis service base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(setupCmd)
}
