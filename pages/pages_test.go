package pages

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nvr-ai/tranquil-trails/common"
	"github.com/nvr-ai/tranquil-trails/images"
	"github.com/nvr-ai/tranquil-trails/models"
	"github.com/nvr-ai/tranquil-trails/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFeature(t *testing.T) {
	tests := []struct {
		in   string
		want Feature
	}{
		{in: "", want: FeatureHome},
		{in: "home", want: FeatureHome},
		{in: "LOGIN", want: FeatureLogin},
		{in: "detect", want: FeatureDetect},
		{in: " chat ", want: FeatureChat},
		{in: "about", want: FeatureAbout},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFeature(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseFeature("settings")
	assert.ErrorIs(t, err, ErrUnknownFeature)
}

func TestFeatureLabels(t *testing.T) {
	labels := make([]string, 0, len(Features()))
	for _, f := range Features() {
		labels = append(labels, f.Label())
	}
	assert.Equal(t, []string{"Home", "Login", "Deteksi Tanaman", "Chatbot", "About Us"}, labels)
	assert.Equal(t, "", Feature(42).Slug())
	assert.False(t, Feature(-1).Valid())
}

func render(t *testing.T, v View) string {
	t.Helper()
	r, err := NewRouter()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, v))
	return buf.String()
}

func TestRenderExactlyOnePagePlusFooter(t *testing.T) {
	for _, f := range Features() {
		t.Run(f.Slug(), func(t *testing.T) {
			out := render(t, View{Feature: f})

			assert.Equal(t, 1, strings.Count(out, `data-page="`), "exactly one page body")
			assert.Contains(t, out, `data-page="`+f.Slug()+`"`)
			assert.Equal(t, 1, strings.Count(out, Footer))
			assert.Contains(t, out, `class="active">`+f.Label())
		})
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	assert.Equal(t, render(t, View{Feature: FeatureAbout}), render(t, View{Feature: FeatureAbout}))
}

func TestRenderStaticContent(t *testing.T) {
	home := render(t, View{Feature: FeatureHome})
	assert.Contains(t, home, "<h3>Latar Belakang Proyek</h3>")
	assert.Contains(t, home, "<li>Deteksi Tanaman menggunakan model AI (YOLO)</li>")

	about := render(t, View{Feature: FeatureAbout})
	assert.Contains(t, about, `<a href="mailto:support@tranquiltrails.com">`)
	assert.Contains(t, about, "<strong>Tranquil Trails</strong>")
}

func TestRenderDetectPlaceholder(t *testing.T) {
	out := render(t, View{Feature: FeatureDetect, Crop: models.CropOnion})

	assert.Contains(t, out, "Model Terpilih: <strong>Bawang</strong>")
	assert.Contains(t, out, "Menunggu gambar diunggah")
	assert.Contains(t, out, `name="model" value="onion"`)
	assert.Contains(t, out, `class="active">Bawang`)
	assert.NotContains(t, out, "Hasil Deteksi")
}

func TestRenderDetectResult(t *testing.T) {
	result := &service.DetectionResult{
		Crop:      models.CropChili,
		Original:  images.Image{Format: images.FormatPNG, Data: []byte{1, 2, 3}, Width: 320, Height: 240},
		Annotated: images.Image{Format: images.FormatJPEG, Data: []byte{4, 5, 6}, Width: 320, Height: 240},
		Boxes: []common.BoundingBox{
			{Label: "leaf_curl", Confidence: 0.912, X1: 1, Y1: 2, X2: 30, Y2: 40},
		},
		Metadata: images.Metadata{CameraMake: "Canon", CameraModel: "EOS", HasGPS: true},
		Elapsed:  15 * time.Millisecond,
	}
	out := render(t, View{Feature: FeatureDetect, Crop: models.CropChili, Detection: result})

	assert.Contains(t, out, `src="data:image/png;base64,AQID"`)
	assert.Contains(t, out, `src="data:image/jpeg;base64,BAUG"`)
	assert.Contains(t, out, "<td>Leaf Curl</td><td>0.91</td><td>(1, 2) - (30, 40)</td>")
	assert.Contains(t, out, "1 objek terdeteksi dalam 15 ms")
	assert.Contains(t, out, "Canon EOS")
	assert.Contains(t, out, "GPS tersedia")
	assert.NotContains(t, out, "Menunggu gambar diunggah")
}

func TestRenderLoginAlert(t *testing.T) {
	res := service.CheckCredentials("petani", "")
	out := render(t, View{Feature: FeatureLogin, Username: "petani", Alert: Warning(res.Message)})

	assert.Contains(t, out, `class="alert alert-warning"`)
	assert.Contains(t, out, service.LoginWarningMessage)
	assert.Contains(t, out, `name="username" value="petani"`)
}

func TestRenderChatAnswerEscaped(t *testing.T) {
	out := render(t, View{
		Feature: FeatureChat,
		Prompt:  "apa itu <padi>?",
		Answer:  "Padi adalah <b>tanaman</b>.",
		Alert:   Success("Chatbot AI Menjawab:"),
	})

	assert.Contains(t, out, "Chatbot AI Menjawab:")
	assert.Contains(t, out, "Padi adalah &lt;b&gt;tanaman&lt;/b&gt;.")
	assert.NotContains(t, out, "<b>tanaman</b>")
}

func TestRenderError(t *testing.T) {
	out := render(t, View{Feature: FeatureDetect, Err: errors.New("image decoding failed")})

	assert.Equal(t, 1, strings.Count(out, `data-page="`))
	assert.Contains(t, out, `data-page="error"`)
	assert.Contains(t, out, "image decoding failed")
	assert.Contains(t, out, Footer)
}

func TestRenderUnknownFeature(t *testing.T) {
	r := MustNewRouter()
	var buf bytes.Buffer
	err := r.Render(&buf, View{Feature: Feature(9)})
	assert.ErrorIs(t, err, ErrUnknownFeature)
	assert.Zero(t, buf.Len())
}

func TestDisplayLabel(t *testing.T) {
	assert.Equal(t, "Leaf Curl", DisplayLabel("leaf_curl"))
	assert.Equal(t, "Bercak Daun", DisplayLabel("bercak-daun"))
	assert.Equal(t, "Healthy", DisplayLabel(" healthy "))
}
