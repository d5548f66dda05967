// Package logger - slog logging with login passwords and Gemini API keys masked.
package logger

import (
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// MaskValue is the string used to replace sensitive values.
const MaskValue = "***REDACTED***"

// maskedKeys are matched as substrings of the lowercased attribute key.
var maskedKeys = []string{"password", "api_key", "apikey", "authorization"}

// googleAPIKey finds a Gemini API key anywhere in a value, e.g. a request URL
// quoted inside an API error.
var googleAPIKey = regexp.MustCompile(`AIza[0-9A-Za-z_-]{35}`)

func isMaskedKey(key string) bool {
	key = strings.ToLower(key)
	for _, k := range maskedKeys {
		if strings.Contains(key, k) {
			return true
		}
	}
	return false
}

// Mask is a slog ReplaceAttr function. It hides the value of credential keys and
// redacts API keys embedded in string and error values.
func Mask(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 {
		switch a.Key {
		case slog.TimeKey, slog.LevelKey, slog.MessageKey, slog.SourceKey:
			return a
		}
	}

	if isMaskedKey(a.Key) {
		return slog.String(a.Key, MaskValue)
	}

	var text string
	switch a.Value.Kind() {
	case slog.KindString:
		text = a.Value.String()
	case slog.KindAny:
		err, ok := a.Value.Any().(error)
		if !ok {
			return a
		}
		text = err.Error()
	default:
		return a
	}

	if googleAPIKey.MatchString(text) {
		return slog.String(a.Key, googleAPIKey.ReplaceAllString(text, MaskValue))
	}
	return a
}

// New creates a logger that masks credentials.
//
// Arguments:
//   - w: The writer for log output, typically os.Stderr.
//   - format: "json" for JSON output, anything else for text.
//   - verbose: Debug level when true, Info otherwise.
//
// Returns:
//   - *slog.Logger: The logger.
func New(w io.Writer, format string, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level, ReplaceAttr: Mask}

	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
