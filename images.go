package folio

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/ingest"
)

const maxUploadSize = 10 << 20 // 10MB

// readUpload ingests the "image" file of a multipart form into a data URI.
// Every failure wraps ingest.ErrImageIngest.
func (a *App) readUpload(c echo.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", fmt.Errorf("%w: no image file provided", ingest.ErrImageIngest)
	}
	if file.Size > maxUploadSize {
		return "", fmt.Errorf("%w: file too large (max 10MB)", ingest.ErrImageIngest)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ingest.ErrImageIngest, err)
	}
	defer src.Close()

	res, err := a.Images.IngestReader(src, file.Header.Get(echo.HeaderContentType), maxUploadSize)
	if err != nil {
		return "", err
	}
	a.Log.Debug("image ingested", "name", file.Filename, "width", res.Width, "height", res.Height, "mime", res.MimeType)
	return res.DataURI, nil
}

// uploadFailed reports a rejected image. The stored image is left as it was.
func (a *App) uploadFailed(c echo.Context, err error, anchor string) error {
	a.Log.Warn("image ingest failed", "error", err)
	if wantsJSON(c) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.Redirect(http.StatusSeeOther, "/?notice=image-failed#"+anchor)
}

func isIngestError(err error) bool {
	return errors.Is(err, ingest.ErrImageIngest) || errors.Is(err, ingest.ErrUnsupportedImage)
}

func (a *App) handleProfileImage(c echo.Context) error {
	uri, err := a.readUpload(c)
	if err != nil {
		if isIngestError(err) {
			return a.uploadFailed(c, err, "about")
		}
		return err
	}
	p, _ := content.FieldPatch(content.ProfileImageKey, uri)
	if _, err := a.Content.Update(c.Request().Context(), p); err != nil {
		return err
	}
	if wantsJSON(c) {
		return c.NoContent(http.StatusNoContent)
	}
	return back(c, "about")
}

func (a *App) handleUpdateImage(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	uri, err := a.readUpload(c)
	if err != nil {
		if isIngestError(err) {
			return a.uploadFailed(c, err, "updates")
		}
		return err
	}
	_, found, err := a.Updates.Edit(c.Request().Context(), id, content.ItemImage, uri)
	if err != nil {
		return err
	}
	if wantsJSON(c) {
		if !found {
			return c.NoContent(http.StatusNoContent)
		}
		return c.NoContent(http.StatusOK)
	}
	return back(c, fmt.Sprintf("update-%d", id))
}
