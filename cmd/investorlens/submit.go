package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/investorlens/investorlens/internal/form"
	"github.com/investorlens/investorlens/internal/logger"
	"github.com/investorlens/investorlens/internal/profile"
	"github.com/investorlens/investorlens/internal/validation"
	"github.com/spf13/cobra"
)

var submitFlags struct {
	file    string
	out     string
	noColor bool
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Validate a profile file and send it for analysis",
	Long: `Submit a YAML or JSON startup profile without the wizard.

The profile goes through the same steps as the interactive flow: every step
must validate before the record is sent. The response is printed to stdout.`,
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().StringVarP(&submitFlags.file, "file", "f", "", "Profile file (YAML or JSON)")
	submitCmd.Flags().StringVarP(&submitFlags.out, "out", "o", "", "Directory to export the result to (overrides report_dir)")
	submitCmd.Flags().BoolVar(&submitFlags.noColor, "no-color", false, "Print the result without syntax highlighting")
	_ = submitCmd.MarkFlagRequired("file")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	in, err := readProfile(submitFlags.file)
	if err != nil {
		return err
	}
	client, metrics, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer flushMetrics(cfg, metrics)

	f := form.NewWith(validation.Default(), in)
	if err := walkToLastStep(f); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Submitting %s to %s", submitFlags.file, client.Endpoint())
	res, err := f.Submit(ctx, client)
	if errors.Is(err, form.ErrInvalid) {
		renderErrors(f.Errors())
		return fmt.Errorf("profile failed validation")
	}
	if err != nil {
		return err
	}

	if err := printResult(res, colorEnabled(submitFlags.noColor)); err != nil {
		return err
	}

	dir := cfg.ReportDir
	if submitFlags.out != "" {
		dir = submitFlags.out
	}
	return saveReport(dir, f.Text(profile.StartupName), res)
}

// walkToLastStep advances f through every step, stopping at the first one
// that does not validate.
func walkToLastStep(f *form.Form) error {
	for !f.IsLast() {
		ok, err := f.Next()
		if err != nil {
			return err
		}
		if !ok {
			renderErrors(f.Errors())
			return fmt.Errorf("step %q failed validation", f.Section().Name)
		}
	}
	return nil
}
