package folio

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
)

func (a *App) handleUpdateAdd(c echo.Context) error {
	item, _, err := a.Updates.Add(c.Request().Context())
	if err != nil {
		return err
	}
	if wantsJSON(c) {
		return c.JSON(http.StatusCreated, item)
	}
	return back(c, fmt.Sprintf("update-%d", item.ID))
}

// handleUpdateEdit sets one field of an item. An unknown id changes nothing
// and answers 204.
func (a *App) handleUpdateEdit(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	field, err := content.ParseItemField(c.FormValue("field"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sc, found, err := a.Updates.Edit(c.Request().Context(), id, field, c.FormValue("value"))
	if err != nil {
		return err
	}
	if !found {
		return c.NoContent(http.StatusNoContent)
	}
	for _, it := range sc.Updates {
		if it.ID == id {
			return c.JSON(http.StatusOK, it)
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// handleUpdateDelete is idempotent: deleting a missing id is not an error.
func (a *App) handleUpdateDelete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if _, _, err := a.Updates.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	if wantsJSON(c) {
		return c.NoContent(http.StatusNoContent)
	}
	return back(c, "updates")
}

func (a *App) handleUpdateMove(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	delta, err := strconv.Atoi(c.FormValue("delta"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid delta")
	}
	ids := content.Move(a.Content.Current().Updates, id, delta)
	if _, err := a.Updates.Reorder(c.Request().Context(), ids); err != nil {
		return a.reorderFailed(c, err)
	}
	if wantsJSON(c) {
		return c.NoContent(http.StatusNoContent)
	}
	return back(c, fmt.Sprintf("update-%d", id))
}

type reorderRequest struct {
	IDs []int64 `json:"ids"`
}

// handleUpdateReorder accepts either a JSON body {"ids": [...]} or a form
// field "ids" holding a comma-separated list.
func (a *App) handleUpdateReorder(c echo.Context) error {
	var req reorderRequest
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
	} else {
		ids, err := parseIDList(c.FormValue("ids"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		req.IDs = ids
	}

	sc, err := a.Updates.Reorder(c.Request().Context(), req.IDs)
	if err != nil {
		return a.reorderFailed(c, err)
	}
	return c.JSON(http.StatusOK, reorderRequest{IDs: sc.IDs()})
}

func (a *App) reorderFailed(c echo.Context, err error) error {
	if errors.Is(err, content.ErrRejectedReorder) {
		return c.JSON(http.StatusConflict, map[string]any{
			"error": err.Error(),
			"ids":   a.Content.Current().IDs(),
		})
	}
	return err
}

func parseIDList(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
