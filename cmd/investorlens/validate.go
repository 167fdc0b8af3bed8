package main

import (
	"fmt"
	"os"

	"github.com/investorlens/investorlens/internal/profile"
	"github.com/investorlens/investorlens/internal/validation"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var validateFlags struct {
	file string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a profile file against every field rule",
	Long: `Validate a YAML or JSON startup profile without contacting the service.

Missing keys take their default value. Every violated rule is listed with the
step that owns the field.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateFlags.file, "file", "f", "", "Profile file (YAML or JSON)")
	_ = validateCmd.MarkFlagRequired("file")
}

func runValidate(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}
	in, err := readProfile(validateFlags.file)
	if err != nil {
		return err
	}

	errs := validation.Default().Validate(in)
	if len(errs) == 0 {
		fmt.Printf("%s: all %d fields valid\n", validateFlags.file, len(profile.Keys()))
		return nil
	}

	renderErrors(errs)
	return fmt.Errorf("%d field(s) failed validation", len(errs))
}

// renderErrors prints field errors as a table in record order.
func renderErrors(errs validation.FieldErrors) {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Step", "Field", "Error"})
	for _, k := range errs.Keys() {
		step := ""
		if sec, ok := profile.SectionOf(k); ok {
			step = sec.Name
		}
		tw.AppendRow(table.Row{step, k.Label(), errs[k]})
	}
	tw.Render()
}
