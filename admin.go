package folio

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/views"
)

const loginRejected = "아이디 또는 비밀번호가 올바르지 않습니다."

func (a *App) handleAdmin(c echo.Context) error {
	if !a.IsAdmin(c) {
		return Render(c, views.LoginForm(views.LoginData{
			Site:      a.siteView(),
			CSRFToken: CsrfToken(c),
		}))
	}
	return Render(c, views.AdminPanel(views.AdminData{
		Site:      a.siteView(),
		Content:   a.Content.Current(),
		CSRFToken: CsrfToken(c),
		Notice:    noticeText(c.QueryParam("notice")),
	}))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	fromPanel := c.FormValue("from") == "panel"

	g := a.gateFor(c)
	if err := g.Login(c.FormValue("id"), c.FormValue("secret")); err != nil {
		a.loginLimiter.Record(ip)
		if fromPanel {
			return RenderStatus(c, http.StatusUnauthorized, views.LoginForm(views.LoginData{
				Site:      a.siteView(),
				ShowError: true,
				CSRFToken: CsrfToken(c),
			}))
		}
		d := a.pageData(c, false)
		d.LoginError = loginRejected
		return RenderStatus(c, http.StatusUnauthorized, views.Page(d))
	}
	if err := a.saveGate(c, g); err != nil {
		return err
	}
	if fromPanel {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (a *App) handleAdminLogout(c echo.Context) error {
	g := a.gateFor(c)
	g.Logout()
	if err := a.saveGate(c, g); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// handleFieldUpdate applies one hero/about edit. The page script calls it on
// every input event, so the store always holds what the editor shows.
func (a *App) handleFieldUpdate(c echo.Context) error {
	p, err := content.TextFieldPatch(c.FormValue("key"), c.FormValue("value"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if _, err := a.Content.Update(c.Request().Context(), p); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// handleAdminSave commits the panel form as a single update and leaves
// admin mode. On a failed write the session stays in admin mode.
func (a *App) handleAdminSave(c echo.Context) error {
	form, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	g := a.gateFor(c)
	for _, key := range content.FieldKeys {
		if key == content.ProfileImageKey {
			continue
		}
		if vals, ok := form[key]; ok && len(vals) > 0 {
			if err := g.Stage(key, vals[0]); err != nil {
				return err
			}
		}
	}

	ctx := c.Request().Context()
	err = g.SaveAndClose(func(fields map[string]string) error {
		p, err := content.FieldsPatch(fields)
		if err != nil {
			return err
		}
		_, err = a.Content.Update(ctx, p)
		return err
	})
	if err != nil {
		return err
	}
	if err := a.saveGate(c, g); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/?notice=saved")
}
