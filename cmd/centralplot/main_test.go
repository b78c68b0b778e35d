package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-centralities/pkg/dataset"
	"github.com/dd0wney/cluso-centralities/pkg/regression"
)

func runCmd(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// generated builds a centrality file from an undirected path 1-2-3-4.
func generated(t *testing.T) (dir string) {
	t.Helper()
	dir = t.TempDir()
	edges := filepath.Join(dir, "edges.csv")
	writeFile(t, edges, "from,to\n1,2\n2,3\n3,4\n")

	code, stdout, stderr := runCmd(t, "generate",
		"-edges", edges,
		"-undirected",
		"-workers", "2",
		"-dir", dir,
		"-file", "centralities.csv",
	)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "wrote 4 records")
	return dir
}

func TestUnknownCommand(t *testing.T) {
	code, _, stderr := runCmd(t, "plot")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, `unknown command "plot"`)
	assert.Contains(t, stderr, "generate")
}

func TestGenerate(t *testing.T) {
	dir := generated(t)

	ds, err := dataset.Load(filepath.Join(dir, "centralities.csv"))
	require.NoError(t, err)
	require.Equal(t, 4, ds.Count())

	p, ok := ds.Point(2)
	require.True(t, ok)
	assert.InDelta(t, 2.0/3.0, p.X, 1e-12)
}

func TestGenerateRequiresEdges(t *testing.T) {
	code, _, stderr := runCmd(t, "generate", "-dir", t.TempDir())
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "-edges is required")
}

func TestFit(t *testing.T) {
	dir := generated(t)

	code, stdout, stderr := runCmd(t, "fit", "-dir", dir, "-json")
	require.Equal(t, 0, code, stderr)

	var s regression.Summary
	require.NoError(t, json.Unmarshal([]byte(stdout), &s))
	assert.Equal(t, 4, s.N)

	ds, err := dataset.Load(filepath.Join(dir, "centralities.csv"))
	require.NoError(t, err)
	want, err := regression.Compute(ds)
	require.NoError(t, err)
	assert.InDelta(t, want.Slope, s.Slope, 1e-9)
	assert.InDelta(t, want.Intercept, s.Intercept, 1e-9)

	code, stdout, _ = runCmd(t, "fit", "-dir", dir)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "points")
	assert.Contains(t, stdout, "r²")
}

func TestFitMissingFile(t *testing.T) {
	code, _, stderr := runCmd(t, "fit", "-dir", t.TempDir(), "-file", "missing.csv")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, dataset.ErrFileUnreadable.Error())
}

func TestFitDegenerate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "flat.csv"), "id,closeness,betweenness\n1,0.1,0.2\n2,0.3,0.2\n")

	code, _, stderr := runCmd(t, "fit", "-dir", dir, "-file", "flat.csv")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, regression.ErrDegenerate.Error())
}

func TestFitLenient(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "c.csv"), "id,closeness,betweenness\n1,0.02,0.10\nbad\n2,0.05,0.30\n3,0.01,0.05\n")

	code, _, stderr := runCmd(t, "fit", "-dir", dir, "-file", "c.csv")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, dataset.ErrMalformedRow.Error())

	code, stdout, stderr := runCmd(t, "fit", "-dir", dir, "-file", "c.csv", "-lenient", "-json")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, `"n": 3`)
	assert.Contains(t, stderr, "skipping malformed row")
}

func TestConfigFile(t *testing.T) {
	dir := generated(t)
	cfgPath := filepath.Join(dir, "centralplot.yaml")
	writeFile(t, cfgPath, "data_dir: "+dir+"\nfile: centralities.csv\nlog_level: error\n")

	code, stdout, stderr := runCmd(t, "fit", "-config", cfgPath)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "points")
	assert.Empty(t, stderr, "info logs are filtered at error level")
}

func TestInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bad.yaml")
	writeFile(t, cfgPath, "duplicates: sometimes\n")

	code, _, stderr := runCmd(t, "fit", "-config", cfgPath)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Duplicates")
}

func TestExport(t *testing.T) {
	dir := generated(t)
	out := filepath.Join(dir, "chart.svg")

	code, stdout, stderr := runCmd(t, "export", "-dir", dir, "-o", out, "-select", "2")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "wrote "+out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "<svg"))

	code, _, stderr = runCmd(t, "export", "-dir", dir, "-o", out, "-select", "99")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "no record with id 99")

	code, _, stderr = runCmd(t, "export", "-dir", dir)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "-o is required")
}

func TestExportSelectsIDZero(t *testing.T) {
	dir := t.TempDir()
	edges := filepath.Join(dir, "edges.csv")
	writeFile(t, edges, "from,to\n0,1\n1,2\n2,3\n")

	code, _, stderr := runCmd(t, "generate", "-edges", edges, "-undirected", "-dir", dir)
	require.Equal(t, 0, code, stderr)

	out := filepath.Join(dir, "chart.svg")
	code, _, stderr = runCmd(t, "export", "-dir", dir, "-o", out, "-select", "0")
	require.Equal(t, 0, code, stderr)
	assert.FileExists(t, out)

	// Without node 0 the same request must fail rather than silently skip.
	writeFile(t, filepath.Join(dir, "no_zero.csv"), "id,closeness,betweenness\n1,0.02,0.10\n2,0.05,0.30\n")
	code, _, stderr = runCmd(t, "export", "-dir", dir, "-file", "no_zero.csv", "-o", out, "-select", "0")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "no record with id 0")
}

func TestLogLevelWarningFromEnv(t *testing.T) {
	dir := generated(t)
	t.Setenv("LOG_LEVEL", "warning")

	code, _, stderr := runCmd(t, "fit", "-dir", dir)
	require.Equal(t, 0, code, stderr)
	assert.NotContains(t, stderr, "load centralities", "info logs are filtered at warn level")
}

func TestMetricsTextfile(t *testing.T) {
	dir := generated(t)
	metricsPath := filepath.Join(dir, "centralplot.prom")
	logPath := filepath.Join(dir, "logs", "centralplot.log")

	code, _, stderr := runCmd(t, "fit", "-dir", dir, "-metrics-file", metricsPath, "-log-file", logPath)
	require.Equal(t, 0, code, stderr)
	assert.Empty(t, stderr, "logs go to the log file")

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "centralplot_dataset_points 4")
	assert.Contains(t, string(data), "centralplot_regression_slope")

	logs, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(logs), `"run_id"`)
	assert.Contains(t, string(logs), "load centralities")
}

func TestHelp(t *testing.T) {
	code, _, stderr := runCmd(t, "fit", "-h")
	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, "-lenient")
}
