package label

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullAnnotations = `<?xml version="1.0" encoding="utf-8"?>
<annotations>
  <image id="0" name="gauge_001.jpg" width="640" height="480">
    <ellipse label="temp_dial" cx="320.5" cy="240.25" rx="150.0" ry="145.5" rotation="2.5"/>
    <points label="temp_center" points="320.0,242.0"/>
    <points label="temp_tip" points="400.0,180.0"/>
  </image>
  <image id="1" name="gauge_002.jpg" width="640" height="480">
    <ellipse label="temp_dial" cx="300" cy="250" rx="140" ry="140"/>
    <points label="temp_center" points="301.0,251.0"/>
    <points label="temp_tip" points="250.0,300.0"/>
  </image>
</annotations>`

const missingTipAnnotations = `<?xml version="1.0" encoding="utf-8"?>
<annotations>
  <image id="0" name="gauge_003.jpg" width="640" height="480">
    <ellipse label="temp_dial" cx="320" cy="240" rx="150" ry="150"/>
    <points label="temp_center" points="320.0,242.0"/>
  </image>
</annotations>`

func writeArchive(t *testing.T, dir, name, annotations string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("annotations.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(annotations))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return path
}

func TestParseArchive(t *testing.T) {
	dir := t.TempDir()
	zipPath := writeArchive(t, dir, "batch1.zip", fullAnnotations)

	samples, err := ParseArchive(zipPath, "/data/raw")
	require.NoError(t, err)
	require.Len(t, samples, 2)

	first := samples[0]
	assert.Equal(t, filepath.Join("/data/raw", "gauge_001.jpg"), first.ImagePath)
	assert.Equal(t, LabelDial, first.Dial.Label)
	assert.Equal(t, 320.5, first.Dial.CX)
	assert.Equal(t, 145.5, first.Dial.RY)
	assert.Equal(t, 2.5, first.Dial.Rotation)
	assert.Equal(t, 320.0, first.Center.X)
	assert.Equal(t, 242.0, first.Center.Y)
	assert.Equal(t, 400.0, first.Tip.X)
	assert.Equal(t, 150.0, first.DialRadius())

	// Rotation attribute absent defaults to zero.
	assert.Equal(t, 0.0, samples[1].Dial.Rotation)
}

func TestParseArchiveMissingLabel(t *testing.T) {
	dir := t.TempDir()
	zipPath := writeArchive(t, dir, "batch_bad.zip", missingTipAnnotations)

	_, err := ParseArchive(zipPath, "/data/raw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing labels")
	assert.Contains(t, err.Error(), "batch_bad.zip")
	assert.Contains(t, err.Error(), "gauge_003.jpg")
}

func TestParseArchiveWithoutAnnotations(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = ParseArchive(path, "/data/raw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "annotations.xml")
}

func TestLoadDatasetCombinesArchivesSorted(t *testing.T) {
	dir := t.TempDir()
	writeArchive(t, dir, "b_second.zip", fullAnnotations)
	writeArchive(t, dir, "a_first.zip", fullAnnotations)

	samples, err := LoadDataset(dir, "/data/raw")
	require.NoError(t, err)
	assert.Len(t, samples, 4)
}

func TestLoadDatasetEmptyDir(t *testing.T) {
	samples, err := LoadDataset(t.TempDir(), "/data/raw")
	require.NoError(t, err)
	assert.Empty(t, samples)
}
