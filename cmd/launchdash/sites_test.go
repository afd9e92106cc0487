package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitesCmd_FirstSeenOrder(t *testing.T) {
	stdout, _, err := run(t, "sites", "--dataset", testdataCSV(t))
	require.NoError(t, err)
	assert.Equal(t, "CCAFS LC-40\nVAFB SLC-4E\nKSC LC-39A\nCCAFS SLC-40\n", stdout)
}

func TestSitesCmd_All(t *testing.T) {
	stdout, _, err := run(t, "sites", "--all", "--dataset", testdataCSV(t))
	require.NoError(t, err)
	assert.Equal(t, "ALL\tAll Sites\n"+
		"CCAFS LC-40\tCCAFS LC-40\n"+
		"VAFB SLC-4E\tVAFB SLC-4E\n"+
		"KSC LC-39A\tKSC LC-39A\n"+
		"CCAFS SLC-40\tCCAFS SLC-40\n", stdout)
}

func TestSitesCmd_InvalidS3URI(t *testing.T) {
	_, _, err := run(t, "sites", "--dataset", "s3://bucket-only")
	requireExitCode(t, err, ExitInvalidArgs)
}
