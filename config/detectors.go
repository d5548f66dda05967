package config

import (
	"image"

	"github.com/nvr-ai/tranquil-trails/inference"
	"github.com/nvr-ai/tranquil-trails/models"
	"github.com/nvr-ai/tranquil-trails/models/model"
	"github.com/nvr-ai/tranquil-trails/models/postprocess"
)

// Detectors returns one detector configuration per crop in menu order.
func (c *Config) Detectors() []inference.DetectorConfig {
	configs := make([]inference.DetectorConfig, 0, len(models.Crops()))
	for _, crop := range models.Crops() {
		m, _ := c.Detection.Model(crop)
		configs = append(configs, inference.DetectorConfig{
			Crop: crop,
			Model: model.NewModelArgs{
				Name:                model.ModelNameYOLOv8,
				Path:                c.Detection.ModelPath(m.Path),
				Classes:             m.Classes,
				InputShape:          image.Pt(m.InputSize, m.InputSize),
				ConfidenceThreshold: m.ConfidenceThreshold,
				NMS: &postprocess.NMSConfig{
					IoUThreshold: m.IoUThreshold,
					ClassAware:   !m.ClassAgnosticNMS,
				},
			},
		})
	}
	return configs
}
