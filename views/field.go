package views

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// FieldSpec describes where a piece of editable text lives and how it looks.
// Key is a content field key ("hero.title") or, when ItemID is set, an
// update item field ("title").
type FieldSpec struct {
	Key         string
	ItemID      int64
	Tag         string // element used for the static rendering, default span
	Class       string
	Multiline   bool
	Rows        int
	Placeholder string
}

var staticTags = map[string]bool{
	"span": true, "p": true, "h1": true, "h2": true, "h3": true, "div": true,
}

// Field renders value as static text for visitors, or as an input
// pre-filled with value when editable. The page script posts every input
// event of an editable field straight to the store.
func Field(spec FieldSpec, value string, editable bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		if editable {
			writeInput(&b, spec, value)
		} else {
			writeStatic(&b, spec, value)
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeStatic(b *strings.Builder, spec FieldSpec, value string) {
	tag := spec.Tag
	if !staticTags[tag] {
		tag = "span"
	}
	b.WriteString("<" + tag)
	if spec.Class != "" {
		b.WriteString(` class="` + templ.EscapeString(spec.Class) + `"`)
	}
	b.WriteString(">")
	for i, line := range strings.Split(value, "\n") {
		if i > 0 {
			b.WriteString("<br>")
		}
		b.WriteString(templ.EscapeString(line))
	}
	b.WriteString("</" + tag + ">")
}

func writeInput(b *strings.Builder, spec FieldSpec, value string) {
	attrs := fieldAttrs(spec)
	if spec.Multiline {
		rows := spec.Rows
		if rows <= 0 {
			rows = 3
		}
		b.WriteString(`<textarea` + attrs + ` rows="` + strconv.Itoa(rows) + `">`)
		b.WriteString(templ.EscapeString(value))
		b.WriteString("</textarea>")
		return
	}
	b.WriteString(`<input type="text"` + attrs + ` value="` + templ.EscapeString(value) + `">`)
}

func fieldAttrs(spec FieldSpec) string {
	var b strings.Builder
	class := "field-input"
	if spec.Class != "" {
		class += " " + spec.Class
	}
	b.WriteString(` class="` + templ.EscapeString(class) + `"`)
	if spec.ItemID != 0 {
		id := strconv.FormatInt(spec.ItemID, 10)
		b.WriteString(` name="` + templ.EscapeString(spec.Key) + `"`)
		b.WriteString(` data-item-id="` + id + `"`)
		b.WriteString(` data-item-field="` + templ.EscapeString(spec.Key) + `"`)
	} else {
		b.WriteString(` name="` + templ.EscapeString(spec.Key) + `"`)
		b.WriteString(` data-field="` + templ.EscapeString(spec.Key) + `"`)
	}
	if spec.Placeholder != "" {
		b.WriteString(` placeholder="` + templ.EscapeString(spec.Placeholder) + `"`)
	}
	return b.String()
}

// ImageField renders an image. When editable it adds an upload form posting
// to action; a failed upload leaves the current image in place.
func ImageField(src, alt, action, csrfToken string, editable bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<img src="` + templ.EscapeString(ImageSrc(src)) + `" alt="` + templ.EscapeString(alt) + `" loading="lazy">`)
		if editable {
			b.WriteString(`<form class="image-upload" method="post" enctype="multipart/form-data" action="` + templ.EscapeString(action) + `">`)
			b.WriteString(`<input type="hidden" name="_csrf" value="` + templ.EscapeString(csrfToken) + `">`)
			b.WriteString(`<label class="image-upload-label">이미지 변경<input type="file" name="image" accept="image/*" data-autosubmit></label>`)
			b.WriteString(`</form>`)
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}
