package folio

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/views"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

func (a *App) siteView() views.SiteConfig {
	return views.SiteConfig{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Author:      a.Config.Author,
	}
}

// pageData collects what the home page shows for this request. A guestbook
// read failure only empties the guestbook block.
func (a *App) pageData(c echo.Context, editable bool) views.PageData {
	entries, err := a.Guestbook.Recent(c.Request().Context(), a.Config.GuestbookLimit)
	if err != nil {
		a.Log.Error("guestbook read failed", "error", err)
	}
	description := a.Config.Description
	if description == "" {
		description = a.Content.Current().Hero.Description
	}
	return views.PageData{
		Site: a.siteView(),
		Meta: views.PageMeta{
			Title:       a.Config.Name,
			Description: description,
			URL:         BuildURL(a.Config.URL),
			OGType:      "profile",
		},
		Content:   a.Content.Current(),
		Profile:   content.Profile(),
		Guestbook: entries,
		Editable:  editable,
		CSRFToken: CsrfToken(c),
		Notice:    noticeText(c.QueryParam("notice")),
	}
}

var notices = map[string]string{
	"saved":        "저장되었습니다.",
	"image-failed": "이미지를 불러올 수 없습니다. 기존 이미지를 유지합니다.",
	"empty":        "메시지를 입력하세요.",
	"slow-down":    "잠시 후 다시 시도하세요.",
}

func noticeText(key string) string {
	return notices[key]
}
