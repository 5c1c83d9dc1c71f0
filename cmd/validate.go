package cmd

import (
	"fmt"

	"github.com/mj1618/flow/internal/output"
	"github.com/mj1618/flow/internal/validate"
	"github.com/spf13/cobra"
)

// ValidateResult is the output of a passing validation.
type ValidateResult struct {
	OK     bool   `yaml:"ok"     json:"ok"`
	Action string `yaml:"action" json:"action"`
	Dir    string `yaml:"dir"    json:"dir"`
}

func (r ValidateResult) Text() string {
	return "Validation passed for " + r.Dir
}

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a project directory against Flow conventions",
	Long: `Validate a project directory (defaults to the current directory).

The directory must contain a .gitignore with a "# core" marker line.
Every violation is listed on stderr before the command fails.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	report, err := validate.Dir(path)
	if err != nil {
		return err
	}

	if !report.OK() {
		for _, issue := range report.Issues {
			fmt.Fprintf(cmd.ErrOrStderr(), "- %s\n", issue)
		}
		return report.Err()
	}

	return output.Fprint(cmd.OutOrStdout(), ValidateResult{
		OK:     true,
		Action: "validate",
		Dir:    report.Dir,
	})
}
