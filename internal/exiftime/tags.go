package exiftime

import (
	"fmt"
	"os"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
)

// Tags holds the EXIF fields the patcher inspects. Empty strings mean unset.
type Tags struct {
	DateTimeOriginal string
	Make             string
	Model            string
}

// TagReader reads the EXIF fields of one image.
type TagReader interface {
	ReadTags(path string) (Tags, error)
}

type exifReader struct{}

func (exifReader) ReadTags(path string) (Tags, error) {
	return ReadTags(path)
}

// ReadTags decodes the EXIF block of path. Images without a readable EXIF
// block report empty tags.
func ReadTags(path string) (Tags, error) {
	f, err := os.Open(path)
	if err != nil {
		return Tags{}, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if x == nil || (err != nil && exif.IsCriticalError(err)) {
		return Tags{}, nil
	}
	return Tags{
		DateTimeOriginal: stringTag(x, exif.DateTimeOriginal),
		Make:             stringTag(x, exif.Make),
		Model:            stringTag(x, exif.Model),
	}, nil
}

func stringTag(x *exif.Exif, name exif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	value, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(value)
}
