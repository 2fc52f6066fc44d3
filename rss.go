package folio

import (
	"encoding/xml"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/ingest"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string        `xml:"title"`
	Link        string        `xml:"link"`
	Description string        `xml:"description"`
	PubDate     string        `xml:"pubDate,omitempty"`
	GUID        rssGUID       `xml:"guid"`
	Enclosure   *rssEnclosure `xml:"enclosure,omitempty"`
}

type rssGUID struct {
	Value       string `xml:",chardata"`
	IsPermaLink bool   `xml:"isPermaLink,attr"`
}

type rssEnclosure struct {
	URL    string `xml:"url,attr"`
	Length int64  `xml:"length,attr"`
	Type   string `xml:"type,attr"`
}

// updateDateLayout is the label format the editor writes. Labels in any
// other form are shown as typed and carry no pubDate.
const updateDateLayout = "2006.01.02"

func (a *App) feed(updates []content.UpdateItem) rssXML {
	items := make([]rssItem, 0, len(updates))
	for _, u := range updates {
		pubDate := ""
		if t, err := time.Parse(updateDateLayout, u.Date); err == nil {
			pubDate = t.Format(time.RFC1123Z)
		}
		link := a.absURL(fmt.Sprintf("/#update-%d", u.ID))
		item := rssItem{
			Title:       u.Title,
			Link:        link,
			Description: u.Description,
			PubDate:     pubDate,
			GUID:        rssGUID{Value: fmt.Sprintf("update-%d", u.ID)},
		}
		item.Enclosure = a.enclosure(u.Image)
		items = append(items, item)
	}
	return rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        BuildURL(a.Config.URL),
			Description: a.Config.Description,
			Items:       items,
		},
	}
}

func (a *App) renderRSS(c echo.Context, updates []content.UpdateItem) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(a.feed(updates))
}

// enclosure describes an item image for the feed. Inline images are left out
// to keep the feed small, and so are links whose type cannot be told from the
// file extension. The size is not known, so length is 0.
func (a *App) enclosure(src string) *rssEnclosure {
	if src == "" || ingest.IsInline(src) {
		return nil
	}
	u, err := url.Parse(src)
	if err != nil {
		return nil
	}
	typ, _, _ := strings.Cut(mime.TypeByExtension(strings.ToLower(path.Ext(u.Path))), ";")
	if !strings.HasPrefix(typ, "image/") {
		return nil
	}
	if strings.HasPrefix(src, "/") {
		src = a.absURL(src)
	}
	return &rssEnclosure{URL: src, Type: typ}
}
