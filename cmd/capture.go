package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mj1618/flow/internal/capture"
	"github.com/mj1618/flow/internal/output"
	"github.com/spf13/cobra"
)

// CaptureResult is the output of `capture --run`.
type CaptureResult struct {
	OK             bool   `yaml:"ok"     json:"ok"`
	Action         string `yaml:"action" json:"action"`
	capture.Result `yaml:",inline"`
}

func (r CaptureResult) Text() string {
	return strings.TrimRight(r.Output, "\n")
}

var captureCmd = &cobra.Command{
	Use:   "capture [--run] [--out FILE] command [args...]",
	Short: "Prototype: capture a command's output",
	Long: `Prototype for capturing a subprocess's output.

Without --run it only echoes the argument vector and the assembled shell
command. With --run the command is executed through sh -c and its combined
output is written to --out (default ~/Desktop/output.txt) and printed.

Pass a ready-made shell snippet after "--":
  flow capture --run -- -c 'make test | tail -n 20'`,
	Args: cobra.ArbitraryArgs,
	RunE: runCapture,
}

func init() {
	rootCmd.AddCommand(captureCmd)
	captureCmd.Flags().SetInterspersed(false)
	captureCmd.Flags().Bool("run", false, "Execute the command and save its output")
	captureCmd.Flags().String("out", "", "File that receives the captured output (default ~/Desktop/output.txt)")
}

func runCapture(cmd *cobra.Command, args []string) error {
	run, _ := cmd.Flags().GetBool("run")
	outPath, _ := cmd.Flags().GetString("out")
	stdout := cmd.OutOrStdout()

	fmt.Fprintf(stdout, "%q\n", args)

	command, err := capture.Command(args)
	if errors.Is(err, capture.ErrNoCommand) {
		fmt.Fprintln(stdout, "Provide a command to run")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "cmd: %q\n", command)

	if !run {
		return nil
	}
	if outPath == "" {
		outPath = capture.DefaultOutputPath()
	}

	res, err := capture.Run(cmd.Context(), command, outPath)
	if err != nil {
		return err
	}
	return output.Fprint(stdout, CaptureResult{
		OK:     res.ExitCode == 0,
		Action: "capture",
		Result: *res,
	})
}
