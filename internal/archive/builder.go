// Package archive builds the downloadable work package: one zip per
// moderator request holding the generated texts and enabled photos of
// every advert in their working set, plus a CSV manifest.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jszwec/csvutil"

	"github.com/mvolkova/travelads/internal/model"
)

// ErrNothingToPackage is returned when the working set is empty.
var ErrNothingToPackage = errors.New("no adverts to package")

// Item pairs an advert with its enabled photos.
type Item struct {
	Advert model.Advert
	Photos []model.AdvertPhoto
}

// ManifestRow is one line of manifest.csv inside the package.
type ManifestRow struct {
	AdvertID   uint64 `csv:"advert_id"`
	Title      string `csv:"title"`
	City       string `csv:"city"`
	Price      int    `csv:"price"`
	PhotoCount int    `csv:"photo_count"`
	TextFile   string `csv:"text_file"`
}

// Builder writes work packages.  PhotoDir is where downloaded photos
// live; OutDir is where finished zips are written.
type Builder struct {
	PhotoDir string
	OutDir   string
}

// NewBuilder returns a Builder over the two storage directories.
func NewBuilder(photoDir, outDir string) *Builder {
	return &Builder{PhotoDir: photoDir, OutDir: outDir}
}

// Build assembles the zip for one working set and returns the path of
// the written file.  Each advert gets its own directory with a text
// file and its enabled photos; manifest.csv at the root indexes them.
// A missing photo file skips the photo, not the package.
func (b *Builder) Build(categoryAlias string, userID uint64, items []Item) (string, error) {
	if len(items) == 0 {
		return "", ErrNothingToPackage
	}
	if err := os.MkdirAll(b.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir out dir: %w", err)
	}

	name := fmt.Sprintf("%s-user%d-%s.zip", categoryAlias, userID, time.Now().UTC().Format("20060102-150405"))
	outPath := filepath.Join(b.OutDir, name)
	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("create package: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	rows := make([]ManifestRow, 0, len(items))
	for _, it := range items {
		dir := fmt.Sprintf("advert_%d", it.Advert.ID)
		textName := dir + "/text.txt"
		if err := b.writeText(zw, textName, it.Advert); err != nil {
			_ = zw.Close()
			return "", err
		}
		n := 0
		for _, p := range it.Photos {
			if err := b.writePhoto(zw, dir, p); err != nil {
				if errors.Is(err, os.ErrNotExist) {
					continue
				}
				_ = zw.Close()
				return "", err
			}
			n++
		}
		price := 0
		if it.Advert.Price != nil {
			price = *it.Advert.Price
		}
		rows = append(rows, ManifestRow{
			AdvertID:   it.Advert.ID,
			Title:      it.Advert.Title,
			City:       it.Advert.City,
			Price:      price,
			PhotoCount: n,
			TextFile:   textName,
		})
	}

	manifest, err := csvutil.Marshal(rows)
	if err != nil {
		_ = zw.Close()
		return "", fmt.Errorf("marshal manifest: %w", err)
	}
	w, err := zw.Create("manifest.csv")
	if err != nil {
		_ = zw.Close()
		return "", fmt.Errorf("create manifest entry: %w", err)
	}
	if _, err := w.Write(manifest); err != nil {
		_ = zw.Close()
		return "", fmt.Errorf("write manifest: %w", err)
	}

	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("finalize package: %w", err)
	}
	return outPath, nil
}

func (b *Builder) writeText(zw *zip.Writer, name string, a model.Advert) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create text entry: %w", err)
	}
	var sb strings.Builder
	sb.WriteString(a.Title)
	sb.WriteString("\n\n")
	sb.WriteString(a.Description)
	sb.WriteString("\n")
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("write text entry: %w", err)
	}
	return nil
}

func (b *Builder) writePhoto(zw *zip.Writer, dir string, p model.AdvertPhoto) error {
	src, err := os.Open(filepath.Join(b.PhotoDir, p.Path))
	if err != nil {
		return fmt.Errorf("open photo: %w", err)
	}
	defer src.Close()
	w, err := zw.Create(dir + "/" + filepath.Base(p.Path))
	if err != nil {
		return fmt.Errorf("create photo entry: %w", err)
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("copy photo: %w", err)
	}
	return nil
}
