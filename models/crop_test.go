package models

import (
	"testing"

	"github.com/nvr-ai/tranquil-trails/models/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCrop(t *testing.T) {
	tests := []struct {
		in   string
		want Crop
	}{
		{in: "", want: CropPaddy},
		{in: "paddy", want: CropPaddy},
		{in: "Padi", want: CropPaddy},
		{in: "CHILI", want: CropChili},
		{in: "cabai", want: CropChili},
		{in: " onion ", want: CropOnion},
		{in: "Bawang", want: CropOnion},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCrop(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseCrop("corn")
	assert.ErrorIs(t, err, ErrUnknownCrop)
}

func TestCropModelMapping(t *testing.T) {
	assert.Equal(t, []Crop{CropPaddy, CropChili, CropOnion}, Crops())

	assert.Equal(t, 1, CropPaddy.ModelIndex())
	assert.Equal(t, 2, CropChili.ModelIndex())
	assert.Equal(t, 3, CropOnion.ModelIndex())
	assert.Equal(t, "best2.onnx", CropChili.ModelFile())

	assert.Equal(t, "Padi", CropPaddy.DisplayName())
	assert.Equal(t, "Cabai", CropChili.DisplayName())
	assert.Equal(t, "Bawang", CropOnion.DisplayName())

	assert.False(t, Crop("corn").Valid())
	assert.Equal(t, 0, Crop("corn").ModelIndex())
}

func TestOutputClassSet(t *testing.T) {
	set := NewOutputClassSet([]string{"healthy", "", "blight"})
	assert.Equal(t, 3, set.Len())
	assert.Equal(t, "healthy", set.Name(0))
	assert.Equal(t, "class_1", set.Name(1))
	assert.Equal(t, "blight", set.Name(2))
	assert.Equal(t, "class_7", set.Name(7))

	var empty *OutputClassSet
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, "class_0", empty.Name(0))
}

func TestNewModel(t *testing.T) {
	m, err := NewModel(model.NewModelArgs{Path: "best1.onnx"})
	require.NoError(t, err)
	assert.Equal(t, model.ModelNameYOLOv8, m.Options().Name)

	_, err = NewModel(model.NewModelArgs{Name: "rfdetr", Path: "x.onnx"})
	assert.Error(t, err)
}
