package services

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer cleans user-submitted text before it is stored.
type Sanitizer struct {
	ugc    *bluemonday.Policy
	strict *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		ugc:    bluemonday.UGCPolicy(),
		strict: bluemonday.StrictPolicy(),
	}
}

// Rich keeps the safe subset of HTML allowed in post bodies.
func (s *Sanitizer) Rich(in string) string {
	return strings.TrimSpace(s.ugc.Sanitize(in))
}

// Plain strips all markup and returns plain text.
func (s *Sanitizer) Plain(in string) string {
	return strings.TrimSpace(html.UnescapeString(s.strict.Sanitize(in)))
}
