package pages

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/nvr-ai/tranquil-trails/models"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.html content/*.md
var files embed.FS

// Footer is the text rendered under every page.
const Footer = "Dibuat dengan ❤️ untuk mendukung petani Indonesia"

// Router renders the sidebar, the body of the selected feature and the footer.
type Router struct {
	tmpl  *template.Template
	home  template.HTML
	about template.HTML
}

// NewRouter parses the embedded templates and converts the static markdown pages.
//
// Returns:
//   - *Router: The router.
//   - error: An error if a template or markdown file is malformed.
func NewRouter() (*Router, error) {
	home, err := renderMarkdown("content/home.md")
	if err != nil {
		return nil, err
	}
	about, err := renderMarkdown("content/about.md")
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New("layout.html").Funcs(funcs()).ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "parsing page templates")
	}

	return &Router{tmpl: tmpl, home: home, about: about}, nil
}

// MustNewRouter is NewRouter that panics on error; the templates are embedded so
// an error is a build defect.
func MustNewRouter() *Router {
	r, err := NewRouter()
	if err != nil {
		panic(err)
	}
	return r
}

type layoutData struct {
	View
	Features []Feature
	Crops    []models.Crop
	Home     template.HTML
	About    template.HTML
	Footer   string
}

// Render writes the complete page for v. Nothing is written if rendering fails.
//
// Arguments:
//   - w: The destination.
//   - v: The page data.
//
// Returns:
//   - error: ErrUnknownFeature for an invalid feature, or a template error.
func (r *Router) Render(w io.Writer, v View) error {
	if !v.Feature.Valid() {
		return errors.Wrapf(ErrUnknownFeature, "%d", v.Feature)
	}
	if v.Crop == "" {
		v.Crop = models.CropPaddy
	}

	var buf bytes.Buffer
	err := r.tmpl.ExecuteTemplate(&buf, "layout.html", layoutData{
		View:     v,
		Features: Features(),
		Crops:    models.Crops(),
		Home:     r.home,
		About:    r.about,
		Footer:   Footer,
	})
	if err != nil {
		return errors.Wrapf(err, "rendering %s page", v.Feature)
	}

	_, err = buf.WriteTo(w)
	return err
}

func renderMarkdown(name string) (template.HTML, error) {
	src, err := files.ReadFile(name)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", name)
	}
	var buf bytes.Buffer
	if err := goldmark.Convert(src, &buf); err != nil {
		return "", errors.Wrapf(err, "converting %s", name)
	}
	return template.HTML(buf.String()), nil //nolint:gosec // embedded content, raw HTML disabled
}

var titleCaser = cases.Title(language.Indonesian)

// DisplayLabel turns a model class name like "leaf_curl" into "Leaf Curl".
func DisplayLabel(label string) string {
	label = strings.NewReplacer("_", " ", "-", " ").Replace(strings.TrimSpace(label))
	return titleCaser.String(label)
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"label": DisplayLabel,
		"confidence": func(c float32) string {
			return fmt.Sprintf("%.2f", c)
		},
		"box": func(x1, y1, x2, y2 float32) string {
			return fmt.Sprintf("(%.0f, %.0f) - (%.0f, %.0f)", x1, y1, x2, y2)
		},
		"millis": func(d time.Duration) string {
			return fmt.Sprintf("%d ms", d.Milliseconds())
		},
		"dataURL": func(uri string) template.URL {
			return template.URL(uri) //nolint:gosec // base64 data URL built from decoded image bytes
		},
	}
}
