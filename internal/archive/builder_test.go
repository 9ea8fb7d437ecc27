package archive

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvolkova/travelads/internal/model"
)

func intp(v int) *int { return &v }

func writePhotoFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func readZip(t *testing.T, path string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	out := map[string]string{}
	for _, zf := range zr.File {
		rc, err := zf.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		out[zf.Name] = string(data)
	}
	return out
}

func TestBuildEmptyWorkingSet(t *testing.T) {
	b := NewBuilder(t.TempDir(), t.TempDir())
	_, err := b.Build("kvartiry", 1, nil)
	require.ErrorIs(t, err, ErrNothingToPackage)
}

func TestBuildPackage(t *testing.T) {
	photoDir := t.TempDir()
	writePhotoFile(t, photoDir, "a.jpg", "jpeg-bytes-a")
	writePhotoFile(t, photoDir, "b.jpg", "jpeg-bytes-b")

	items := []Item{
		{
			Advert: model.Advert{ID: 10, Title: "Квартира в Казани", Description: "Сдаётся.", City: "Казань", Price: intp(25000)},
			Photos: []model.AdvertPhoto{
				{ID: 1, AdvertID: 10, Path: "a.jpg"},
				{ID: 2, AdvertID: 10, Path: "b.jpg"},
			},
		},
		{
			Advert: model.Advert{ID: 11, Title: "Дом", Description: "Сдаётся дом.", City: "Казань"},
		},
	}

	b := NewBuilder(photoDir, t.TempDir())
	path, err := b.Build("kvartiry", 7, items)
	require.NoError(t, err)
	assert.Contains(t, filepath.Base(path), "kvartiry-user7-")

	files := readZip(t, path)
	assert.Contains(t, files, "advert_10/text.txt")
	assert.Contains(t, files, "advert_10/a.jpg")
	assert.Contains(t, files, "advert_10/b.jpg")
	assert.Contains(t, files, "advert_11/text.txt")
	assert.Contains(t, files, "manifest.csv")

	assert.Equal(t, "jpeg-bytes-a", files["advert_10/a.jpg"])
	assert.Contains(t, files["advert_10/text.txt"], "Квартира в Казани")
	assert.Contains(t, files["advert_10/text.txt"], "Сдаётся.")

	manifest := files["manifest.csv"]
	lines := strings.Split(strings.TrimSpace(manifest), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "advert_id,title,city,price,photo_count,text_file", lines[0])
	assert.Contains(t, manifest, "10,Квартира в Казани,Казань,25000,2,advert_10/text.txt")
	assert.Contains(t, manifest, "11,Дом,Казань,0,0,advert_11/text.txt")
}

func TestBuildSkipsMissingPhotoFiles(t *testing.T) {
	photoDir := t.TempDir()
	writePhotoFile(t, photoDir, "exists.jpg", "data")

	items := []Item{{
		Advert: model.Advert{ID: 5, Title: "Квартира", City: "Казань"},
		Photos: []model.AdvertPhoto{
			{ID: 1, AdvertID: 5, Path: "exists.jpg"},
			{ID: 2, AdvertID: 5, Path: "gone.jpg"},
		},
	}}

	b := NewBuilder(photoDir, t.TempDir())
	path, err := b.Build("kvartiry", 1, items)
	require.NoError(t, err)

	files := readZip(t, path)
	assert.Contains(t, files, "advert_5/exists.jpg")
	assert.NotContains(t, files, "advert_5/gone.jpg")
	assert.Contains(t, files["manifest.csv"], "5,Квартира,Казань,0,1,advert_5/text.txt")
}
