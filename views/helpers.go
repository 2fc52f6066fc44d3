package views

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/ingest"
)

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// ImageSrc returns s when it is an inline image, an http(s) URL or a
// site-relative path, and "" otherwise.
func ImageSrc(s string) string {
	switch {
	case ingest.IsInline(s):
		return s
	case strings.HasPrefix(s, "https://"), strings.HasPrefix(s, "http://"):
		return s
	case strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "//"):
		return s
	}
	return ""
}

// ProfileImageSrc falls back to the bundled portrait when no image was
// uploaded.
func ProfileImageSrc(a content.About) string {
	if src := ImageSrc(a.ProfileImage); src != "" {
		return src
	}
	return content.DefaultProfileImage
}

// PersonJsonLD produces a Schema.org ProfilePage JSON-LD block for the site
// owner.
func PersonJsonLD(cfg SiteConfig, c content.SiteContent) string {
	person := map[string]interface{}{
		"@type":       "Person",
		"description": c.About.Desc1,
		"url":         buildURL(cfg.URL),
	}
	if cfg.Author != "" {
		person["name"] = cfg.Author
	}
	data := map[string]interface{}{
		"@context":   "https://schema.org",
		"@type":      "ProfilePage",
		"name":       cfg.Name,
		"url":        buildURL(cfg.URL),
		"mainEntity": person,
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
