// Package text holds the shared defensive-formatting helpers used by every
// renderer: whitespace normalization, ellipsis truncation, and markdown-safe
// escaping for titles and URLs.
package text

import (
	"net/url"
	"strings"
)

const Ellipsis = "…"

// Normalize collapses all whitespace runs (including newlines and tabs) to a
// single space and trims the ends. Idempotent.
func Normalize(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// Truncate normalizes value and shortens it to at most max runes, replacing
// the tail with a single ellipsis rune. A max of zero or less yields just the
// ellipsis, or an empty string when the input normalizes to empty.
func Truncate(value string, max int) string {
	normalized := Normalize(value)
	if normalized == "" {
		return ""
	}
	if max < 1 {
		max = 1
	}
	runes := []rune(normalized)
	if len(runes) <= max {
		return normalized
	}
	return string(runes[:max-1]) + Ellipsis
}

var urlEscaper = strings.NewReplacer("(", "%28", ")", "%29")

// SafeMarkdownURL returns value canonicalized for embedding inside a markdown
// link, or "" when it is not an absolute http(s) URL. Literal parentheses are
// percent-encoded so they cannot close the link span early.
func SafeMarkdownURL(value string) string {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return ""
	}
	if parsed.Host == "" {
		return ""
	}
	return urlEscaper.Replace(parsed.String())
}

// SanitizeTitle normalizes value and strips square brackets so the result is
// safe as a markdown link label. Returns fallback when nothing is left.
func SanitizeTitle(value, fallback string) string {
	cleaned := strings.NewReplacer("[", "", "]", "").Replace(value)
	cleaned = Normalize(cleaned)
	if cleaned == "" {
		return fallback
	}
	return cleaned
}

// LinkLabel derives a short display label (host plus path) from an already
// validated URL. Returns "" when the URL does not parse.
func LinkLabel(safeURL string) string {
	parsed, err := url.Parse(safeURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	label := parsed.Host
	if parsed.Path != "" && parsed.Path != "/" {
		label += strings.TrimRight(parsed.Path, "/")
	}
	return SanitizeTitle(label, "")
}
