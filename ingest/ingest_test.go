package ingest

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestPNG encodes a width x height gradient as PNG.
func createTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodedBounds(t *testing.T, uri string) (string, image.Rectangle) {
	t.Helper()
	mimeType, data, err := DecodeDataURI(uri)
	require.NoError(t, err)
	img, _, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return mimeType, img.Bounds()
}

func TestDownscaleScenario(t *testing.T) {
	in := New(Options{MaxEdge: 800, Quality: 80})
	uri, err := in.Ingest(createTestPNG(t, 2000, 1000), "image/png")
	require.NoError(t, err)

	mimeType, b := decodedBounds(t, uri)
	assert.Equal(t, "image/jpeg", mimeType)
	assert.Equal(t, 800, b.Dx())
	assert.Equal(t, 400, b.Dy())
}

func TestDownscalePreservesPortraitAspect(t *testing.T) {
	in := New(Options{MaxEdge: 800})
	r, err := in.Process(createTestPNG(t, 600, 1200), "image/png")
	require.NoError(t, err)
	assert.Equal(t, 400, r.Width)
	assert.Equal(t, 800, r.Height)
}

func TestDownscaleLeavesSmallImagesAtSize(t *testing.T) {
	in := New(Options{MaxEdge: 800})
	r, err := in.Process(createTestPNG(t, 320, 200), "image/png")
	require.NoError(t, err)
	assert.Equal(t, 320, r.Width)
	assert.Equal(t, 200, r.Height)
	assert.Equal(t, "image/jpeg", r.MimeType, "the downscaling variant always re-encodes")
}

func TestRawVariantEmbedsBytes(t *testing.T) {
	src := createTestPNG(t, 2000, 1000)
	in := New(Options{})
	uri, err := in.Ingest(src, "image/png")
	require.NoError(t, err)

	mimeType, data, err := DecodeDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
	assert.Equal(t, src, data)
}

func TestSniffsMissingMimeType(t *testing.T) {
	in := New(Options{})
	r, err := in.Process(createTestPNG(t, 10, 10), "")
	require.NoError(t, err)
	assert.Equal(t, "image/png", r.MimeType)

	r, err = in.Process(createTestPNG(t, 10, 10), "application/octet-stream")
	require.NoError(t, err)
	assert.Equal(t, "image/png", r.MimeType)
}

func TestCorruptFileIsRecoverableError(t *testing.T) {
	for _, opts := range []Options{{}, {MaxEdge: 800}} {
		in := New(opts)
		_, err := in.Ingest([]byte("\x89PNG\r\n\x1a\nnot really a png"), "image/png")
		assert.True(t, errors.Is(err, ErrImageIngest), "MaxEdge=%d: got %v", opts.MaxEdge, err)
	}
}

func TestEmptyFile(t *testing.T) {
	_, err := New(Options{}).Ingest(nil, "image/png")
	assert.True(t, errors.Is(err, ErrImageIngest))
}

func TestUnsupportedType(t *testing.T) {
	_, err := New(Options{}).Ingest([]byte("%PDF-1.4 hello"), "")
	assert.True(t, errors.Is(err, ErrUnsupportedImage))

	_, err = New(Options{}).Ingest([]byte("just some text"), "image/png")
	assert.True(t, errors.Is(err, ErrUnsupportedImage))
}

func TestContentWinsOverDeclaredType(t *testing.T) {
	src := createTestPNG(t, 4, 4)
	in := New(Options{})

	uri, err := in.Ingest(src, "image/jpeg")
	require.NoError(t, err)
	mimeType, data, err := DecodeDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType, "the data URI must describe its payload")
	assert.Equal(t, src, data)

	r, err := in.Process(src, "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "image/png", r.MimeType)
}

func TestIngestReaderLimit(t *testing.T) {
	src := createTestPNG(t, 50, 50)
	in := New(Options{})

	_, err := in.IngestReader(bytes.NewReader(src), "image/png", int64(len(src)-1))
	assert.True(t, errors.Is(err, ErrImageIngest))

	r, err := in.IngestReader(bytes.NewReader(src), "image/png", int64(len(src)))
	require.NoError(t, err)
	assert.Equal(t, 50, r.Width)
}

func TestDecodeDataURI(t *testing.T) {
	mimeType, data, err := DecodeDataURI(EncodeDataURI("image/gif", []byte("GIF89a")))
	require.NoError(t, err)
	assert.Equal(t, "image/gif", mimeType)
	assert.Equal(t, []byte("GIF89a"), data)

	for _, bad := range []string{"https://example.com/a.png", "data:image/png,raw", "data:image/png;base64", "data:image/png;base64,%%%"} {
		_, _, err := DecodeDataURI(bad)
		assert.Error(t, err, bad)
	}
}

func TestIsInline(t *testing.T) {
	assert.True(t, IsInline("data:image/jpeg;base64,AAAA"))
	assert.False(t, IsInline("https://images.unsplash.com/photo.jpg"))
}
