// Package golden runs directories of example programs: every file under
// good/ must run cleanly (and match its .out file when one exists), every
// file under bad/ must fail somewhere in the pipeline.
package golden

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arnavsurve/spi/internal/pascal"
	"github.com/arnavsurve/spi/internal/pascal/interpreter"
	"github.com/arnavsurve/spi/internal/pascal/runtime"
)

type TestResult struct {
	FileName string
	Passed   bool
	Output   string // failure reason, or the error a bad test produced
	IsGood   bool
}

type Report struct {
	Results                []TestResult
	GoodPassed, GoodFailed int
	BadPassed, BadFailed   int
}

func (r *Report) Failed() bool {
	return r.GoodFailed > 0 || r.BadFailed > 0
}

// Failures returns the results that did not pass.
func (r *Report) Failures() []TestResult {
	var out []TestResult
	for _, res := range r.Results {
		if !res.Passed {
			out = append(out, res)
		}
	}
	return out
}

// Run executes dir/good/*<ext> and dir/bad/*<ext> sequentially.
func Run(dir, ext string, opts ...interpreter.Option) (*Report, error) {
	report := &Report{}

	goodFiles, err := filepath.Glob(filepath.Join(dir, "good", "*"+ext))
	if err != nil {
		return nil, err
	}
	badFiles, err := filepath.Glob(filepath.Join(dir, "bad", "*"+ext))
	if err != nil {
		return nil, err
	}
	if len(goodFiles) == 0 && len(badFiles) == 0 {
		return nil, fmt.Errorf("no %s files under %s/good or %s/bad", ext, dir, dir)
	}

	for _, file := range goodFiles {
		res := runGood(file, ext, opts)
		if res.Passed {
			report.GoodPassed++
		} else {
			report.GoodFailed++
		}
		report.Results = append(report.Results, res)
	}
	for _, file := range badFiles {
		res := runBad(file, ext, opts)
		if res.Passed {
			report.BadPassed++
		} else {
			report.BadFailed++
		}
		report.Results = append(report.Results, res)
	}
	return report, nil
}

func runGood(file, ext string, opts []interpreter.Option) TestResult {
	res := TestResult{FileName: filepath.Base(file), IsGood: true}

	src, err := pascal.ReadSource(file, ext)
	if err != nil {
		res.Output = err.Error()
		return res
	}
	result, err := pascal.Run(src, opts...)
	if err != nil {
		res.Output = fmt.Sprintf("unexpected error: %v", err)
		return res
	}

	want, err := os.ReadFile(strings.TrimSuffix(file, ext) + ".out")
	if os.IsNotExist(err) {
		res.Passed = true
		return res
	}
	if err != nil {
		res.Output = err.Error()
		return res
	}

	got := FormatBindings(result.Bindings)
	if strings.TrimSpace(got) != strings.TrimSpace(string(want)) {
		res.Output = fmt.Sprintf("Output mismatch.\nExpected:\n%s\nGot:\n%s", strings.TrimSpace(string(want)), strings.TrimSpace(got))
		return res
	}
	res.Passed = true
	return res
}

func runBad(file, ext string, opts []interpreter.Option) TestResult {
	res := TestResult{FileName: filepath.Base(file)}

	src, err := pascal.ReadSource(file, ext)
	if err != nil {
		res.Output = err.Error()
		return res
	}
	if _, err := pascal.Run(src, opts...); err != nil {
		res.Passed = true
		res.Output = err.Error()
		return res
	}
	res.Output = "program ran without error"
	return res
}

// FormatBindings renders bindings as sorted `name = value` lines.
func FormatBindings(bindings map[string]runtime.Value) string {
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s = %s\n", name, bindings[name])
	}
	return b.String()
}
