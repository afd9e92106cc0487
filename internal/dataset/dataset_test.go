package dataset

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testdataPath() string {
	return filepath.Join("testdata", "spacex_launch_dash.csv")
}

func loadTestdata(t *testing.T) *Dataset {
	t.Helper()
	ds, err := LoadFile(testdataPath())
	require.NoError(t, err)
	return ds
}

func TestLoadFile_Testdata(t *testing.T) {
	ds := loadTestdata(t)

	assert.Equal(t, 56, ds.Len())
	assert.Equal(t, testdataPath(), ds.Source())

	lo, hi := ds.PayloadBounds()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 9600.0, hi)
	assert.LessOrEqual(t, lo, hi)
}

func TestDistinctSites_FirstSeenOrder(t *testing.T) {
	ds := loadTestdata(t)
	assert.Equal(t, []string{"CCAFS LC-40", "VAFB SLC-4E", "KSC LC-39A", "CCAFS SLC-40"}, ds.DistinctSites())
}

func TestSiteCounts(t *testing.T) {
	ds := loadTestdata(t)
	counts := ds.SiteCounts()
	assert.Equal(t, 26, counts["CCAFS LC-40"])
	assert.Equal(t, 10, counts["VAFB SLC-4E"])
	assert.Equal(t, 13, counts["KSC LC-39A"])
	assert.Equal(t, 7, counts["CCAFS SLC-40"])
}

func TestRecords_AreCopies(t *testing.T) {
	ds := loadTestdata(t)

	recs := ds.Records()
	recs[0].Site = "MUTATED"
	raw := recs[1].Raw()
	raw[0] = "MUTATED"

	fresh := ds.Records()
	assert.Equal(t, "CCAFS LC-40", fresh[0].Site)
	assert.NotEqual(t, "MUTATED", fresh[1].Raw()[0])
}

func TestRecord_PassthroughFields(t *testing.T) {
	ds := loadTestdata(t)
	rec := ds.Records()[28]

	assert.Equal(t, 28, rec.Index)
	assert.Equal(t, "VAFB SLC-4E", rec.Site)
	assert.Equal(t, 9600.0, rec.PayloadMassKg)
	assert.Equal(t, 1, rec.Class)
	assert.Equal(t, "FT", rec.BoosterCategory)

	flight, ok := rec.Field("Flight Number")
	require.True(t, ok)
	assert.Equal(t, "29", flight)

	_, ok = rec.Field("No Such Column")
	assert.False(t, ok)
}

func TestEach_StopsEarly(t *testing.T) {
	ds := loadTestdata(t)
	n := 0
	ds.Each(func(LaunchRecord) bool {
		n++
		return n < 3
	})
	assert.Equal(t, 3, n)
}

func TestHasSite(t *testing.T) {
	ds := loadTestdata(t)
	assert.True(t, ds.HasSite("KSC LC-39A"))
	assert.False(t, ds.HasSite("ALL"))
}

func TestLoad_EmptyBody(t *testing.T) {
	ds, err := Load(strings.NewReader(
		"Launch Site,Payload Mass (kg),class,Booster Version Category\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())

	lo, hi := ds.PayloadBounds()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 0.0, hi)
	assert.Empty(t, ds.DistinctSites())
}
