package cmd

import (
	"errors"
	"fmt"

	"github.com/arnavsurve/spi/internal/pascal/golden"
	"github.com/spf13/cobra"
)

var errTestsFailed = errors.New("some tests failed")

// test: run good/ and bad/ example programs
var TestCmd = &cobra.Command{
	Use:   "test <dir>",
	Short: "Run a directory of good/ and bad/ example programs",
	Args:  cobra.ExactArgs(1),
	RunE:  testRun,
}

func testRun(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	report, err := golden.Run(args[0], cfg.Extension, interpreterOptions()...)
	if err != nil {
		return err
	}

	for _, res := range report.Results {
		switch {
		case res.Passed && res.IsGood:
			fmt.Fprintf(out, "  ✅ %s\n", res.FileName)
		case res.Passed:
			fmt.Fprintf(out, "  ✅ %s (Failed as expected)\n", res.FileName)
		default:
			fmt.Fprintf(out, "  ❌ %s\n", res.FileName)
		}
	}

	if failures := report.Failures(); len(failures) > 0 {
		fmt.Fprintln(out, "\n--- Detailed Failures ---")
		for _, failure := range failures {
			kind := "Bad Test"
			if failure.IsGood {
				kind = "Good Test"
			}
			fmt.Fprintf(out, "\n❌ Test: %s (%s)\nReason:\n%s\n---\n", failure.FileName, kind, failure.Output)
		}
	}

	fmt.Fprintln(out, "\n--------------------")
	fmt.Fprintf(out, "Good Tests Summary: ✅ Passed: %d | ❌ Failed: %d\n", report.GoodPassed, report.GoodFailed)
	fmt.Fprintf(out, "Bad Tests Summary:  ✅ Passed: %d | ❌ Failed: %d\n", report.BadPassed, report.BadFailed)
	fmt.Fprintln(out, "--------------------")

	if report.Failed() {
		return errTestsFailed
	}
	return nil
}
