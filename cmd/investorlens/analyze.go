package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/colorprofile"
	"github.com/investorlens/investorlens/internal/form"
	"github.com/investorlens/investorlens/internal/logger"
	"github.com/investorlens/investorlens/internal/profile"
	"github.com/investorlens/investorlens/internal/tui/wizard"
	"github.com/spf13/cobra"
)

var analyzeFlags struct {
	out string
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Fill in a startup profile interactively and analyze it",
	Long: `Open the four-step wizard (basics, market, business model, team).

Each step is validated before you can move on. On the last step the profile
is sent to the analysis service and the response is printed once it arrives.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFlags.out, "out", "o", "", "Directory to export the result to (overrides report_dir)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, metrics, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer flushMetrics(cfg, metrics)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f := form.New()
	res, err := wizard.Run(wizard.Options{Analyzer: client, Form: f, Context: ctx})
	if errors.Is(err, wizard.ErrCancelled) {
		logger.Info("Wizard cancelled")
		fmt.Fprintln(os.Stderr, "Cancelled.")
		return nil
	}
	if err != nil {
		return err
	}

	if err := printResult(res, colorEnabled(false)); err != nil {
		return err
	}

	dir := cfg.ReportDir
	if analyzeFlags.out != "" {
		dir = analyzeFlags.out
	}
	return saveReport(dir, f.Text(profile.StartupName), res)
}

// colorEnabled reports whether stdout can show highlighted output.
func colorEnabled(disabled bool) bool {
	if disabled {
		return false
	}
	switch colorprofile.Detect(os.Stdout, os.Environ()) {
	case colorprofile.NoTTY, colorprofile.Ascii:
		return false
	}
	return true
}
