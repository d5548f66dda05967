package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/nvr-ai/tranquil-trails/common"
	"github.com/nvr-ai/tranquil-trails/images"
	"github.com/nvr-ai/tranquil-trails/inference"
	"github.com/nvr-ai/tranquil-trails/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	boxes []common.BoundingBox
	err   error
	calls int
	size  image.Point
}

func (e *fakeEngine) Predict(_ context.Context, img image.Image) ([]common.BoundingBox, error) {
	e.calls++
	e.size = img.Bounds().Size()
	return e.boxes, e.err
}

func (e *fakeEngine) Close() error { return nil }

type fakeDetectors map[models.Crop]*fakeEngine

func (d fakeDetectors) Engine(crop models.Crop) (inference.Engine, error) {
	e, ok := d[crop]
	if !ok {
		return nil, models.ErrUnknownCrop
	}
	return e, nil
}

func newDetectors() fakeDetectors {
	return fakeDetectors{
		models.CropPaddy: {},
		models.CropChili: {boxes: []common.BoundingBox{{
			Label: "leaf_curl", Confidence: 0.8, X1: 10, Y1: 10, X2: 60, Y2: 40,
		}}},
		models.CropOnion: {},
	}
}

func fieldImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 40, G: 160, B: 60, A: 255})
		}
	}
	return img
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, fieldImage(w, h)))
	return buf.Bytes()
}

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, fieldImage(w, h), &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func TestDetectUsesSelectedModel(t *testing.T) {
	detectors := newDetectors()
	svc := NewDetection(detectors, nil)
	data := pngBytes(t, 120, 80)

	result, err := svc.Detect(context.Background(), models.CropChili, data)
	require.NoError(t, err)

	assert.Equal(t, 1, detectors[models.CropChili].calls)
	assert.Zero(t, detectors[models.CropPaddy].calls)
	assert.Zero(t, detectors[models.CropOnion].calls)
	assert.Equal(t, image.Pt(120, 80), detectors[models.CropChili].size)

	assert.Equal(t, models.CropChili, result.Crop)
	assert.Equal(t, images.FormatPNG, result.Original.Format)
	assert.Equal(t, data, result.Original.Data)
	assert.Equal(t, 120, result.Original.Width)
	assert.Equal(t, 80, result.Original.Height)
	assert.Equal(t, images.FormatJPEG, result.Annotated.Format)
	assert.Equal(t, 120, result.Annotated.Width)
	assert.Equal(t, 80, result.Annotated.Height)
	assert.NotEmpty(t, result.Annotated.Data)
	require.Len(t, result.Boxes, 1)
	assert.Equal(t, "leaf_curl", result.Boxes[0].Label)
	assert.Len(t, result.Checksum, 32)
	assert.True(t, result.Metadata.Empty())
}

func TestDetectSupportedFormats(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		format  images.ImageFormat
		dataURL string
	}{
		{name: "png", data: pngBytes(t, 96, 72), format: images.FormatPNG, dataURL: "data:image/png;base64,"},
		{name: "jpeg", data: jpegBytes(t, 96, 72), format: images.FormatJPEG, dataURL: "data:image/jpeg;base64,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detectors := newDetectors()
			svc := NewDetection(detectors, nil)

			result, err := svc.Detect(context.Background(), models.CropChili, tt.data)
			require.NoError(t, err)

			assert.Equal(t, 1, detectors[models.CropChili].calls)
			assert.Zero(t, detectors[models.CropPaddy].calls)
			assert.Zero(t, detectors[models.CropOnion].calls)
			assert.Equal(t, image.Pt(96, 72), detectors[models.CropChili].size)

			assert.Equal(t, tt.format, result.Original.Format)
			assert.Equal(t, tt.data, result.Original.Data)
			assert.Equal(t, 96, result.Original.Width)
			assert.Equal(t, 72, result.Original.Height)
			assert.True(t, strings.HasPrefix(result.Original.DataURL(), tt.dataURL))

			assert.Equal(t, images.FormatJPEG, result.Annotated.Format)
			assert.Equal(t, 96, result.Annotated.Width)
			assert.Equal(t, 72, result.Annotated.Height)
			assert.True(t, strings.HasPrefix(result.Annotated.DataURL(), "data:image/jpeg;base64,"))
			assert.NotEqual(t, result.Original.Data, result.Annotated.Data)
			require.Len(t, result.Boxes, 1)
		})
	}
}

func TestDetectIsStateless(t *testing.T) {
	svc := NewDetection(newDetectors(), nil)
	data := pngBytes(t, 64, 64)

	first, err := svc.Detect(context.Background(), models.CropPaddy, data)
	require.NoError(t, err)
	second, err := svc.Detect(context.Background(), models.CropPaddy, data)
	require.NoError(t, err)

	assert.Equal(t, first.Checksum, second.Checksum)
	assert.Equal(t, first.Annotated.Data, second.Annotated.Data)
}

func TestDetectErrors(t *testing.T) {
	detectors := newDetectors()
	detectors[models.CropOnion].err = errors.New("inference failed")
	svc := NewDetection(detectors, nil)

	_, err := svc.Detect(context.Background(), models.CropPaddy, nil)
	assert.ErrorIs(t, err, images.ErrEmptyImage)

	_, err = svc.Detect(context.Background(), models.CropPaddy, []byte("GIF89a...."))
	assert.ErrorIs(t, err, images.ErrUnsupportedFormat)

	_, err = svc.Detect(context.Background(), models.CropPaddy, []byte{0xFF, 0xD8, 0x00, 0x01})
	assert.ErrorIs(t, err, images.ErrDecodeFailed)

	_, err = svc.Detect(context.Background(), models.CropOnion, pngBytes(t, 16, 16))
	assert.ErrorContains(t, err, "inference failed")

	_, err = svc.Detect(context.Background(), models.Crop("corn"), pngBytes(t, 16, 16))
	assert.ErrorIs(t, err, models.ErrUnknownCrop)

	assert.Zero(t, detectors[models.CropPaddy].calls)
}

type countingGenerator struct {
	prompts []string
	reply   string
	err     error
}

func (g *countingGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.reply, g.err
}

func TestChatReply(t *testing.T) {
	gen := &countingGenerator{reply: "Siram padi secukupnya."}
	chat := NewChat(gen, nil)

	out, err := chat.Reply(context.Background(), "  Bagaimana merawat padi? ")
	require.NoError(t, err)
	assert.Equal(t, "Siram padi secukupnya.", out)
	assert.Equal(t, []string{"  Bagaimana merawat padi? "}, gen.prompts)
}

func TestChatEmptyPromptSkipsGenerator(t *testing.T) {
	gen := &countingGenerator{reply: "unused"}
	chat := NewChat(gen, nil)

	for _, prompt := range []string{"", "   ", "\t\n"} {
		_, err := chat.Reply(context.Background(), prompt)
		assert.ErrorIs(t, err, ErrEmptyPrompt)
	}
	assert.Empty(t, gen.prompts)
}

func TestChatGeneratorError(t *testing.T) {
	gen := &countingGenerator{err: errors.New("quota exceeded")}
	chat := NewChat(gen, nil)

	_, err := chat.Reply(context.Background(), "halo")
	assert.ErrorContains(t, err, "quota exceeded")
	assert.Len(t, gen.prompts, 1)
}

func TestCheckCredentials(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		ok       bool
	}{
		{name: "both present", username: "petani", password: "rahasia", ok: true},
		{name: "padded", username: "  petani ", password: " x ", ok: true},
		{name: "empty username", username: "", password: "rahasia"},
		{name: "blank password", username: "petani", password: "   "},
		{name: "both empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckCredentials(tt.username, tt.password)
			assert.Equal(t, tt.ok, got.OK)
			if tt.ok {
				assert.Equal(t, LoginSuccessMessage, got.Message)
			} else {
				assert.Equal(t, LoginWarningMessage, got.Message)
			}
		})
	}
}
