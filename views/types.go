package views

import (
	"github.com/eringen/folio/content"
	"github.com/eringen/folio/guestbook"
)

// SiteConfig holds site-wide settings populated from environment variables.
// Every handler passes this to templates so nothing is hardcoded.
type SiteConfig struct {
	Name        string // FOLIO_SITE_NAME
	URL         string // FOLIO_SITE_URL
	Description string // FOLIO_SITE_DESCRIPTION
	Author      string // FOLIO_SITE_AUTHOR
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "profile"
}

// PageData is everything the home page renders. Editable selects the
// authenticated rendering of every field; the content itself carries no
// such flag.
type PageData struct {
	Site       SiteConfig
	Meta       PageMeta
	Content    content.SiteContent
	Profile    content.ProfileData
	Guestbook  []guestbook.Entry
	Editable   bool
	CSRFToken  string
	LoginError string
	Notice     string
}

// AdminData feeds the buffered admin panel.
type AdminData struct {
	Site      SiteConfig
	Content   content.SiteContent
	CSRFToken string
	Notice    string
}

// Value returns the stored value of a field key. The form itself holds the
// edits until Save posts them.
func (d AdminData) Value(key string) string {
	v, _ := d.Content.FieldValue(key)
	return v
}

// LoginData feeds the standalone login form.
type LoginData struct {
	Site      SiteConfig
	ShowError bool
	CSRFToken string
}
