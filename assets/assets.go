package assets

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"battle-map/render"
)

// assetLog follows the log.Logger configured at call time.
func assetLog() *zerolog.Logger {
	l := log.With().Str("module", "assets").Logger()
	return &l
}

const PlaceholderSize = 64

var (
	placeholderLight = color.RGBA{200, 0, 200, 255}
	placeholderDark  = color.RGBA{20, 20, 20, 255}
)

// Extensions lists the file extensions the loader can decode.
var Extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// IsImage reports whether path has a decodable image extension.
func IsImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Loader decodes images on first use and caches the result. A path that
// cannot be read or decoded resolves to the placeholder, and the failure is
// only logged once.
type Loader struct {
	// Convert turns a decoded image into the bitmap type the drawing surface
	// uses. Nil keeps the decoded image as is.
	Convert func(image.Image) render.Bitmap

	cache       map[string]render.Bitmap
	placeholder render.Bitmap
}

func NewLoader(convert func(image.Image) render.Bitmap) *Loader {
	return &Loader{
		Convert: convert,
		cache:   make(map[string]render.Bitmap),
	}
}

// Image implements render.ImageSource.
func (l *Loader) Image(path string) render.Bitmap {
	if path == "" {
		return l.Placeholder()
	}
	if bm, ok := l.cache[path]; ok {
		return bm
	}
	img, err := Decode(path)
	var bm render.Bitmap
	if err != nil {
		assetLog().Warn().Err(err).Str("path", path).Msg("using placeholder image")
		bm = l.Placeholder()
	} else {
		bm = l.convert(img)
	}
	l.cache[path] = bm
	return bm
}

// Size returns the pixel size of the image at path.
func (l *Loader) Size(path string) (w, h int) {
	b := l.Image(path).Bounds()
	return b.Dx(), b.Dy()
}

// Put stores an already decoded image under key. Later requests for key
// return it without touching the file system.
func (l *Loader) Put(key string, img image.Image) render.Bitmap {
	bm := l.convert(img)
	l.cache[key] = bm
	return bm
}

// Forget drops path from the cache so the next request decodes it again.
func (l *Loader) Forget(path string) {
	delete(l.cache, path)
}

func (l *Loader) Placeholder() render.Bitmap {
	if l.placeholder == nil {
		l.placeholder = l.convert(Placeholder())
	}
	return l.placeholder
}

func (l *Loader) convert(img image.Image) render.Bitmap {
	if l.Convert == nil {
		return img
	}
	return l.Convert(img)
}

// Decode reads and decodes the image file at path.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	return DecodeReader(f, path)
}

// DecodeReader decodes an image from r. name is only used for messages.
func DecodeReader(r io.Reader, name string) (image.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", name, err)
	}
	assetLog().Debug().Str("path", name).Str("format", format).
		Int("w", img.Bounds().Dx()).Int("h", img.Bounds().Dy()).Msg("image decoded")
	return img, nil
}

// Placeholder returns a checkerboard marking a missing image.
func Placeholder() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, PlaceholderSize, PlaceholderSize))
	cell := PlaceholderSize / 4
	for y := 0; y < PlaceholderSize; y++ {
		for x := 0; x < PlaceholderSize; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetRGBA(x, y, placeholderLight)
			} else {
				img.SetRGBA(x, y, placeholderDark)
			}
		}
	}
	return img
}

// TokenName derives a token name from an image file name by stripping the
// directory and extension.
func TokenName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
