package folio

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// lastModified is the newest parseable update date, or "" when none parse.
func lastModified(dates []string) string {
	var newest time.Time
	for _, d := range dates {
		if t, err := time.Parse(updateDateLayout, d); err == nil && t.After(newest) {
			newest = t
		}
	}
	if newest.IsZero() {
		return ""
	}
	return newest.Format("2006-01-02")
}

// The portfolio is a single page; the admin routes are left out.
func (a *App) renderSitemap(c echo.Context) error {
	updates := a.Content.Current().Updates
	dates := make([]string, len(updates))
	for i, u := range updates {
		dates[i] = u.Date
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{
			{Loc: a.absURL("/"), LastMod: lastModified(dates)},
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
