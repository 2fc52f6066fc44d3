// Package ingest turns uploaded image files into inline data URIs that can
// be stored in the site content and used directly as an image source.
package ingest

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp"
)

// Errors returned by Ingest. Both leave the caller's previous image intact.
var (
	ErrImageIngest      = errors.New("ingest: unreadable image")
	ErrUnsupportedImage = errors.New("ingest: unsupported image type")
)

// Defaults for the downscaling variant.
const (
	DefaultMaxEdge = 800
	DefaultQuality = 80
)

var supported = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Options configures an Ingestor. MaxEdge 0 selects the raw variant, which
// embeds the file bytes unchanged.
type Options struct {
	MaxEdge int
	Quality int
}

// Ingestor converts image files to data URIs.
type Ingestor struct {
	opts Options
}

// New returns an Ingestor. A zero Quality falls back to DefaultQuality.
func New(opts Options) *Ingestor {
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = DefaultQuality
	}
	if opts.MaxEdge < 0 {
		opts.MaxEdge = 0
	}
	return &Ingestor{opts: opts}
}

// Result describes an ingested image.
type Result struct {
	DataURI  string
	MimeType string
	Width    int
	Height   int
}

// Ingest returns data as a data URI. See Process.
func (in *Ingestor) Ingest(data []byte, mimeType string) (string, error) {
	r, err := in.Process(data, mimeType)
	if err != nil {
		return "", err
	}
	return r.DataURI, nil
}

// IngestReader reads at most limit bytes from r and ingests them.
func (in *Ingestor) IngestReader(r io.Reader, mimeType string, limit int64) (Result, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrImageIngest, err)
	}
	if int64(len(data)) > limit {
		return Result{}, fmt.Errorf("%w: larger than %d bytes", ErrImageIngest, limit)
	}
	return in.Process(data, mimeType)
}

// Process validates data as an image. The raw variant embeds the bytes
// as-is; the downscaling variant applies the EXIF orientation, fits the
// longest edge to MaxEdge keeping the aspect ratio and re-encodes as JPEG.
// The stored MIME type is sniffed from data; mimeType is only a hint.
func (in *Ingestor) Process(data []byte, mimeType string) (Result, error) {
	if len(data) == 0 {
		return Result{}, fmt.Errorf("%w: empty file", ErrImageIngest)
	}
	mimeType = resolveMime(data, mimeType)
	if !supported[mimeType] {
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedImage, mimeType)
	}

	if in.opts.MaxEdge == 0 {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return Result{}, fmt.Errorf("%w: %v", ErrImageIngest, err)
		}
		return Result{
			DataURI:  EncodeDataURI(mimeType, data),
			MimeType: mimeType,
			Width:    cfg.Width,
			Height:   cfg.Height,
		}, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrImageIngest, err)
	}
	img = applyOrientation(img, readOrientation(data))

	b := img.Bounds()
	if b.Dx() > in.opts.MaxEdge || b.Dy() > in.opts.MaxEdge {
		img = imaging.Fit(img, in.opts.MaxEdge, in.opts.MaxEdge, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(in.opts.Quality)); err != nil {
		return Result{}, fmt.Errorf("%w: encode jpeg: %v", ErrImageIngest, err)
	}
	b = img.Bounds()
	return Result{
		DataURI:  EncodeDataURI("image/jpeg", buf.Bytes()),
		MimeType: "image/jpeg",
		Width:    b.Dx(),
		Height:   b.Dy(),
	}, nil
}

// resolveMime trusts the bytes over the declared type. The declared type is
// only used when the content is not recognized at all, so a truncated file
// still reports ErrImageIngest rather than ErrUnsupportedImage.
func resolveMime(data []byte, declared string) string {
	sniffed := baseType(mimetype.Detect(data).String())
	if supported[sniffed] {
		return sniffed
	}
	declared = strings.ToLower(baseType(declared))
	if declared == "image/jpg" {
		declared = "image/jpeg"
	}
	if sniffed == "application/octet-stream" && supported[declared] {
		return declared
	}
	return sniffed
}

func baseType(m string) string {
	return strings.TrimSpace(strings.SplitN(m, ";", 2)[0])
}

// readOrientation returns the EXIF orientation tag, or 1 when absent.
func readOrientation(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	o, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return o
}

func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	}
	return img
}

// EncodeDataURI builds data:<mime>;base64,<payload>.
func EncodeDataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI splits a base64 data URI into its MIME type and bytes.
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data uri")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("data uri has no payload")
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, fmt.Errorf("data uri is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode payload: %w", err)
	}
	return mimeType, data, nil
}

// IsInline reports whether s is an inline image rather than a URL.
func IsInline(s string) bool {
	return strings.HasPrefix(s, "data:image/")
}
