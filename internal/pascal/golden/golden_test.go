package golden

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arnavsurve/spi/internal/pascal/runtime"
	"github.com/nalgeon/be"
)

func TestRunTestdata(t *testing.T) {
	report, err := Run("testdata", ".pas")
	be.Err(t, err, nil)

	for _, f := range report.Failures() {
		t.Errorf("%s: %s", f.FileName, f.Output)
	}
	be.Equal(t, report.GoodPassed, 3)
	be.Equal(t, report.BadPassed, 2)
	be.Equal(t, report.Failed(), false)
}

func TestRunReportsMismatch(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good")
	be.Err(t, os.MkdirAll(good, 0o755), nil)
	be.Err(t, os.WriteFile(filepath.Join(good, "p.pas"), []byte("program p; var x : integer; begin x := 1 end."), 0o644), nil)
	be.Err(t, os.WriteFile(filepath.Join(good, "p.out"), []byte("x = 2\n"), 0o644), nil)

	report, err := Run(dir, ".pas")
	be.Err(t, err, nil)
	be.True(t, report.Failed())
	be.Equal(t, report.GoodFailed, 1)

	failures := report.Failures()
	be.Equal(t, len(failures), 1)
	be.Equal(t, failures[0].FileName, "p.pas")
	be.True(t, failures[0].IsGood)
}

func TestRunBadProgramThatSucceeds(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad")
	be.Err(t, os.MkdirAll(bad, 0o755), nil)
	be.Err(t, os.WriteFile(filepath.Join(bad, "ok.pas"), []byte("program ok; begin end."), 0o644), nil)

	report, err := Run(dir, ".pas")
	be.Err(t, err, nil)
	be.Equal(t, report.BadFailed, 1)
	be.Equal(t, report.Failures()[0].Output, "program ran without error")
}

func TestRunEmptyDirectory(t *testing.T) {
	_, err := Run(t.TempDir(), ".pas")
	be.Err(t, err, "no .pas files")
}

func TestFormatBindings(t *testing.T) {
	got := FormatBindings(map[string]runtime.Value{
		"y": runtime.Real(2),
		"a": runtime.Int(-3),
	})
	be.Equal(t, got, "a = -3\ny = 2.0\n")
	be.Equal(t, FormatBindings(nil), "")
}
