// Package pages - Navigation over the five features and server-side rendering of their pages.
package pages

import (
	"strings"

	"github.com/pkg/errors"
)

// Feature is one entry of the sidebar menu. Exactly one feature page renders per request.
type Feature int

const (
	FeatureHome Feature = iota
	FeatureLogin
	FeatureDetect
	FeatureChat
	FeatureAbout
)

// ErrUnknownFeature is returned for a menu selection outside the closed set.
var ErrUnknownFeature = errors.New("unknown feature")

var features = []struct {
	slug  string
	label string
}{
	FeatureHome:   {slug: "home", label: "Home"},
	FeatureLogin:  {slug: "login", label: "Login"},
	FeatureDetect: {slug: "detect", label: "Deteksi Tanaman"},
	FeatureChat:   {slug: "chat", label: "Chatbot"},
	FeatureAbout:  {slug: "about", label: "About Us"},
}

// Features returns every feature in menu order.
func Features() []Feature {
	return []Feature{FeatureHome, FeatureLogin, FeatureDetect, FeatureChat, FeatureAbout}
}

// ParseFeature maps a URL slug to a feature. Empty selects Home.
//
// Arguments:
//   - s: The slug, case-insensitive.
//
// Returns:
//   - Feature: The selected feature.
//   - error: ErrUnknownFeature if s names no feature.
func ParseFeature(s string) (Feature, error) {
	slug := strings.ToLower(strings.TrimSpace(s))
	if slug == "" {
		return FeatureHome, nil
	}
	for _, f := range Features() {
		if features[f].slug == slug {
			return f, nil
		}
	}
	return FeatureHome, errors.Wrapf(ErrUnknownFeature, "%q", s)
}

// Valid reports whether f is one of Features().
func (f Feature) Valid() bool {
	return f >= FeatureHome && f <= FeatureAbout
}

// Slug is the URL path segment of the feature.
func (f Feature) Slug() string {
	if !f.Valid() {
		return ""
	}
	return features[f].slug
}

// Label is the menu text of the feature.
func (f Feature) Label() string {
	if !f.Valid() {
		return ""
	}
	return features[f].label
}

func (f Feature) String() string {
	return f.Slug()
}
