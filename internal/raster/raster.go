package raster

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder

	"github.com/gen2brain/go-fitz"

	"billex/internal/config"
	"billex/internal/domain"
)

// pdfMagic is the signature every PDF starts with. The declared content type
// is not trusted; only the bytes are.
var pdfMagic = []byte("%PDF")

// Page is one rendered document page, already JPEG-encoded for transport.
type Page struct {
	Number int // 1-based, matches physical page order
	JPEG   []byte
}

// Rasterizer renders document bytes into per-page JPEG images.
type Rasterizer struct {
	dpi     float64
	quality int
}

// New creates a Rasterizer from config, applying sane bounds.
func New(cfg *config.RasterConfig) *Rasterizer {
	dpi := cfg.DPI
	if dpi <= 0 {
		dpi = 150
	}
	quality := cfg.JPEGQuality
	if quality <= 0 || quality > 100 {
		quality = 80
	}
	return &Rasterizer{dpi: float64(dpi), quality: quality}
}

// IsPDF reports whether data carries the PDF magic signature.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, pdfMagic)
}

// Source is an opened document whose pages can be rendered one at a time,
// so callers control how many decoded pages exist at once.
type Source interface {
	PageCount() int
	RenderPage(n int) (Page, error)
	Close() error
}

// Document is the Source backed by go-fitz (PDF) or a decoded image.
type Document struct {
	r     *Rasterizer
	pdf   *fitz.Document // nil for single-image documents
	img   image.Image    // set for single-image documents
	pages int
}

// Open sniffs and opens document bytes. Non-PDF bytes are treated as a
// single-page image document. Undecodable bytes yield
// domain.ErrUnsupportedFormat.
func (r *Rasterizer) Open(data []byte) (Source, error) {
	if IsPDF(data) {
		doc, err := fitz.NewFromMemory(data)
		if err != nil {
			return nil, fmt.Errorf("%w: opening PDF: %v", domain.ErrUnsupportedFormat, err)
		}
		return &Document{r: r, pdf: doc, pages: doc.NumPage()}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding image: %v", domain.ErrUnsupportedFormat, err)
	}
	return &Document{r: r, img: img, pages: 1}, nil
}

// PageCount returns the number of physical pages.
func (d *Document) PageCount() int {
	return d.pages
}

// RenderPage renders page n (1-based) and returns it JPEG-encoded. The
// decoded pixel buffer is released as soon as encoding finishes.
func (d *Document) RenderPage(n int) (Page, error) {
	if n < 1 || n > d.pages {
		return Page{}, fmt.Errorf("page %d out of range 1..%d", n, d.pages)
	}

	var img image.Image
	if d.pdf != nil {
		rendered, err := d.pdf.ImageDPI(n-1, d.r.dpi)
		if err != nil {
			return Page{}, fmt.Errorf("rendering PDF page %d: %w", n, err)
		}
		img = rendered
	} else {
		img = d.img
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: d.r.quality}); err != nil {
		return Page{}, fmt.Errorf("encoding page %d: %w", n, err)
	}
	return Page{Number: n, JPEG: buf.Bytes()}, nil
}

// Close releases the underlying document resources.
func (d *Document) Close() error {
	if d.pdf != nil {
		return d.pdf.Close()
	}
	return nil
}
