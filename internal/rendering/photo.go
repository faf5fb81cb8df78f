package rendering

import (
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	photoPolicyOnce sync.Once
	photoPolicy     *bluemonday.Policy
)

// photoSanitizer accepts a single img element whose src is a base64 image
// data URL. Every other scheme is stripped.
func photoSanitizer() *bluemonday.Policy {
	photoPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.RequireParseableURLs(true)
		policy.AllowDataURIImages()
		policy.AllowAttrs("src").OnElements("img")
		photoPolicy = policy
	})
	return photoPolicy
}

// PhotoMarkup returns a sanitized img element for a stored photo data URL, or
// an empty string when the URL is blank or not an inline image.
func PhotoMarkup(dataURL string) template.HTML {
	trimmed := strings.TrimSpace(dataURL)
	if trimmed == "" {
		return ""
	}
	raw := `<img src="` + template.HTMLEscapeString(trimmed) + `">`
	cleaned := strings.TrimSpace(photoSanitizer().Sanitize(raw))
	if !strings.Contains(cleaned, "src=") {
		return ""
	}
	// #nosec G203 -- output of the photo policy above
	return template.HTML(cleaned)
}
