package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCmd_Table(t *testing.T) {
	stdout, _, err := run(t, "report", "--dataset", testdataCSV(t), "--no-color")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Launch outcomes by site")
	assert.Contains(t, stdout, "CCAFS LC-40")
	assert.Contains(t, stdout, "KSC LC-39A")
	assert.Contains(t, stdout, "76.9%")
	assert.Contains(t, stdout, "All Sites")
}

func TestReportCmd_JSON(t *testing.T) {
	stdout, _, err := run(t, "report", "--format", "json", "--dataset", testdataCSV(t))
	require.NoError(t, err)

	var out struct {
		Sites []struct {
			Site        string  `json:"site"`
			Launches    int     `json:"launches"`
			SuccessRate float64 `json:"success_rate"`
		} `json:"sites"`
		Total struct {
			Launches  int `json:"launches"`
			Successes int `json:"successes"`
		} `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))

	require.Len(t, out.Sites, 4)
	assert.Equal(t, "CCAFS LC-40", out.Sites[0].Site)
	assert.Equal(t, 26, out.Sites[0].Launches)
	assert.InDelta(t, 0.4, out.Sites[1].SuccessRate, 1e-9)
	assert.Equal(t, 56, out.Total.Launches)
	assert.Equal(t, 23, out.Total.Successes)
}

func TestReportCmd_UnsupportedFormat(t *testing.T) {
	_, _, err := run(t, "report", "--format", "xml", "--dataset", testdataCSV(t))
	requireExitCode(t, err, ExitInvalidArgs)
}
