package folio

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/guestbook"
	"github.com/eringen/folio/views"
)

func (a *App) handleHome(c echo.Context) error {
	return Render(c, views.Page(a.pageData(c, a.IsAdmin(c))))
}

func (a *App) handleGuestbookPost(c echo.Context) error {
	if !a.guestbookLimiter.Allow(c.RealIP()) {
		return c.Redirect(http.StatusSeeOther, "/?notice=slow-down#guestbook")
	}
	_, err := a.Guestbook.Post(c.Request().Context(), c.FormValue("message"), a.Config.GuestbookLimit)
	if errors.Is(err, guestbook.ErrEmptyMessage) {
		return c.Redirect(http.StatusSeeOther, "/?notice=empty#guestbook")
	}
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/#guestbook")
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c)
}

func (a *App) handleFeed(c echo.Context) error {
	return a.renderRSS(c, a.Content.Current().Updates)
}

// handleFavicon prefers a favicon in the static dir over the embedded one.
func (a *App) handleFavicon(c echo.Context) error {
	if path := filepath.Join(a.staticDir, "favicon.svg"); fileExists(path) {
		return c.File(path)
	}
	data, err := EmbeddedAssets.ReadFile("embedded/favicon.svg")
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/svg+xml", data)
}

func (a *App) handleRobots(c echo.Context) error {
	if path := filepath.Join(a.staticDir, "robots.txt"); fileExists(path) {
		return c.File(path)
	}
	body := fmt.Sprintf("User-agent: *\nDisallow: /admin/\n\nSitemap: %s\n", a.absURL("/sitemap.xml"))
	return c.String(http.StatusOK, body)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Log.Error("server error", "error", err, "uri", c.Request().RequestURI)
		_ = RenderStatus(c, code, views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
