package pages

import (
	"github.com/nvr-ai/tranquil-trails/models"
	"github.com/nvr-ai/tranquil-trails/service"
)

// Alert is a colored notice shown at the top of a page body.
type Alert struct {
	// Level is one of "success", "warning" or "error".
	Level   string
	Message string
}

// View is the data of one rendered page.
type View struct {
	Feature Feature

	// Crop is the selected detection model on the Detect page.
	Crop models.Crop
	// Detection is the outcome of an upload; nil shows the placeholder.
	Detection *service.DetectionResult

	// Username is echoed back into the login form.
	Username string

	// Prompt is echoed back into the chat form.
	Prompt string
	// Answer is the generated chat text.
	Answer string

	Alert *Alert

	// Err replaces the feature body with the error page.
	Err error
}

// Success builds a success alert.
func Success(msg string) *Alert { return &Alert{Level: "success", Message: msg} }

// Warning builds a warning alert.
func Warning(msg string) *Alert { return &Alert{Level: "warning", Message: msg} }
