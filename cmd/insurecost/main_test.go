package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/insurecost/pkg/errors"
)

const insuranceCSV = `age,sex,bmi,children,smoker,region,charges
25,female,22.0,0,no,southwest,3000
40,male,30.0,2,yes,southeast,15000
60,male,35.0,1,yes,northwest,25000
33,female,27.5,3,no,northeast,5200
51,female,24.1,0,no,southwest,9800
`

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "insurance.csv")
	require.NoError(t, os.WriteFile(path, []byte(insuranceCSV), 0o600))
	return path
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
		check   func(t *testing.T, cfg *config)
	}{
		{
			name: "defaults",
			args: []string{"--data", "insurance.csv"},
			check: func(t *testing.T, cfg *config) {
				assert.Equal(t, "insurance.csv", cfg.DataPath)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Equal(t, "console", cfg.LogFormat)
				assert.False(t, cfg.Predict)
			},
		},
		{
			name: "prediction request",
			args: []string{"-d", "insurance.csv", "--age", "25", "--bmi", "22.5", "--smoker", "yes"},
			check: func(t *testing.T, cfg *config) {
				assert.True(t, cfg.Predict)
				assert.Equal(t, 25, cfg.Age)
				assert.InDelta(t, 22.5, cfg.BMI, 1e-12)
				assert.Equal(t, "yes", cfg.Smoker)
			},
		},
		{name: "no input", args: nil, wantErr: true},
		{name: "plot without data", args: []string{"--model-in", "m.json", "--plot", "p.png"}, wantErr: true},
		{name: "bad log level", args: []string{"--data", "x.csv", "--log.level", "loud"}, wantErr: true},
		{name: "bad age", args: []string{"--data", "x.csv", "--age", "old"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseArgs(tt.args, io.Discard)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestRun_FitReportAndPredict(t *testing.T) {
	dir := t.TempDir()
	cfg := &config{
		DataPath: writeCSV(t),
		ModelOut: filepath.Join(dir, "model.json"),
		PlotPath: filepath.Join(dir, "scatter.svg"),
		Predict:  true,
		Age:      25,
		BMI:      22.0,
		Smoker:   "no",
	}

	var out bytes.Buffer
	require.NoError(t, run(cfg, &out))

	text := out.String()
	assert.Contains(t, text, "Records: 5\n")
	assert.Contains(t, text, "Average charges: 11600.00\n")
	assert.Contains(t, text, "Average charges (smokers): 20000.00\n")
	assert.Contains(t, text, "Coefficient smoker: ")
	assert.Contains(t, text, "R²: ")
	assert.Contains(t, text, "Predicted charges for age=25 bmi=22 smoker=no: ")

	assert.FileExists(t, cfg.ModelOut)
	assert.FileExists(t, cfg.PlotPath)

	// The exported model predicts the same value without the dataset.
	var again bytes.Buffer
	reload := &config{ModelIn: cfg.ModelOut, Predict: true, Age: 25, BMI: 22.0, Smoker: "no"}
	require.NoError(t, run(reload, &again))
	assert.NotContains(t, again.String(), "Records:")
	assert.Equal(t, lastLine(text), lastLine(again.String()))
}

func TestRun_InvalidSmokerHasNoResult(t *testing.T) {
	cfg := &config{DataPath: writeCSV(t), Predict: true, Age: 30, BMI: 25, Smoker: "maybe"}

	var out bytes.Buffer
	err := run(cfg, &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
	assert.Contains(t, out.String(), "Predicted charges: no result")
}

func TestRun_MissingFile(t *testing.T) {
	cfg := &config{DataPath: filepath.Join(t.TempDir(), "absent.csv")}
	err := run(cfg, io.Discard)
	assert.Error(t, err)
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return lines[len(lines)-1]
}
