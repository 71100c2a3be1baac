package out

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	xdraw "golang.org/x/image/draw"

	distractionout "github.com/sayanthsai/ADHD-simulator/internal/modules/distraction/port/out"
	apperrors "github.com/sayanthsai/ADHD-simulator/internal/platform/errors"
)

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// DirImageSource serves images from a flat asset directory. Assets are
// addressed by file name; Decode scales to the requested cell box and
// samples two pixel rows per cell for half-block rendering.
type DirImageSource struct {
	dir string
}

func NewDirImageSource(dir string) *DirImageSource {
	return &DirImageSource{dir: dir}
}

// List returns the decodable asset names, empty when the directory is
// missing or unreadable.
func (s *DirImageSource) List() []string {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

func (s *DirImageSource) Decode(asset string, w, h int) (distractionout.Mosaic, error) {
	f, err := os.Open(filepath.Join(s.dir, asset))
	if err != nil {
		return distractionout.Mosaic{}, fmt.Errorf("%w: %s: %v", apperrors.ErrDecode, asset, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return distractionout.Mosaic{}, fmt.Errorf("%w: %s: %v", apperrors.ErrDecode, asset, err)
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	// Two pixel rows per cell row: the upper one colors the ▀ glyph, the
	// lower one its background.
	scaled := image.NewRGBA(image.Rect(0, 0, w, 2*h))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), src, src.Bounds(), xdraw.Over, nil)

	m := distractionout.Mosaic{
		W:      w,
		H:      h,
		Top:    make([]string, w*h),
		Bottom: make([]string, w*h),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.Top[y*w+x] = hexAt(scaled, x, 2*y)
			m.Bottom[y*w+x] = hexAt(scaled, x, 2*y+1)
		}
	}
	return m, nil
}

func hexAt(img *image.RGBA, x, y int) string {
	r, g, b, _ := img.At(x, y).RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
