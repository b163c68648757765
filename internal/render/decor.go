package render

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/jung-kurt/gofpdf/v2"
)

// ErrAssetMissing is returned by a Loader when an image asset cannot be
// read. Decoration-only: callers degrade to an undecorated document.
var ErrAssetMissing = errors.New("image asset missing")

// Loader resolves image assets for page decoration.
type Loader interface {
	LoadImage(path string) ([]byte, error)
}

// FileLoader reads assets from the local filesystem.
type FileLoader struct{}

func (FileLoader) LoadImage(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrAssetMissing, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrAssetMissing, path, err)
	}
	return data, nil
}

const (
	decorImageName = "decor-logo"

	// Brand mark: first page only, bottom-right, native aspect at fixed width.
	brandMarkWidth = 35.0

	// Watermark: every page, lower-center, near-transparent, larger scale.
	watermarkWidth = 120.0
	watermarkAlpha = 0.12
	watermarkTopY  = 150.0
)

// Decorator overlays the brand mark and watermark onto rendered pages.
// It is a plain value handed to the renderer; decoration stays independent
// of pagination. A decorator whose asset failed to load applies nothing.
type Decorator struct {
	image     []byte
	imageType string
	enabled   bool
}

// NewDecorator loads the logo once up front. A missing or unreadable asset
// disables decoration and is logged, never propagated: a lost logo degrades
// to an undecorated document, not a render failure.
func NewDecorator(loader Loader, logoPath string) *Decorator {
	if logoPath == "" {
		return &Decorator{}
	}
	data, err := loader.LoadImage(logoPath)
	if err != nil {
		log.Printf("[Decor] Logo unavailable, rendering without decoration: %v", err)
		return &Decorator{}
	}
	imgType := sniffImageType(data)
	if imgType == "" {
		log.Printf("[Decor] Unsupported logo format at %s, rendering without decoration", logoPath)
		return &Decorator{}
	}
	return &Decorator{image: data, imageType: imgType, enabled: true}
}

func sniffImageType(data []byte) string {
	switch http.DetectContentType(data) {
	case "image/png":
		return "PNG"
	case "image/jpeg":
		return "JPG"
	case "image/gif":
		return "GIF"
	default:
		return ""
	}
}

func (d *Decorator) Enabled() bool {
	return d.enabled
}

// Apply draws the watermark on the given page and, on the first page, the
// brand mark. Called once per physical page as the renderer opens it, so
// content overlays the near-transparent mark.
func (d *Decorator) Apply(pdf *gofpdf.Fpdf, page int) {
	if !d.enabled {
		return
	}

	opts := gofpdf.ImageOptions{ImageType: d.imageType}
	info := pdf.GetImageInfo(decorImageName)
	if info == nil {
		info = pdf.RegisterImageOptionsReader(decorImageName, opts, bytes.NewReader(d.image))
		if info == nil || pdf.Err() {
			return
		}
	}
	aspect := info.Height() / info.Width()

	pageW, pageH := pdf.GetPageSize()

	wmHeight := watermarkWidth * aspect
	pdf.SetAlpha(watermarkAlpha, "Normal")
	pdf.ImageOptions(decorImageName, (pageW-watermarkWidth)/2, watermarkTopY, watermarkWidth, wmHeight, false, opts, 0, "")
	pdf.SetAlpha(1.0, "Normal")

	if page == 1 {
		bmHeight := brandMarkWidth * aspect
		pdf.ImageOptions(decorImageName, pageW-10-brandMarkWidth, pageH-10-bmHeight, brandMarkWidth, bmHeight, false, opts, 0, "")
	}
}
