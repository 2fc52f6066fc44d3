package folio

import (
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
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

// absURL resolves a site path such as "/feed.xml" against the canonical URL.
func (a *App) absURL(p string) string {
	return strings.TrimRight(a.Config.URL, "/") + p
}

// parseID reads the :id path parameter of an update item.
func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
	}
	return id, nil
}

// wantsJSON reports whether the request came from the page script rather
// than a plain form post.
func wantsJSON(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON) ||
		c.Request().Header.Get("X-CSRF-Token") != ""
}

// back redirects form posts to the page anchor they came from.
func back(c echo.Context, anchor string) error {
	target := "/"
	if anchor != "" {
		target += "#" + anchor
	}
	return c.Redirect(http.StatusSeeOther, target)
}
