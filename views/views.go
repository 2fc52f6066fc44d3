package views

import (
	"context"
	"embed"
	"html/template"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/folio/content"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("views").Funcs(template.FuncMap{
	"field": func(spec FieldSpec, value string, editable bool) (template.HTML, error) {
		return templ.ToGoHTML(context.Background(), Field(spec, value, editable))
	},
	"image": func(src, alt, action, csrfToken string, editable bool) (template.HTML, error) {
		return templ.ToGoHTML(context.Background(), ImageField(src, alt, action, csrfToken, editable))
	},
	"spec": func(key, tag, class string, multiline bool) FieldSpec {
		return FieldSpec{Key: key, Tag: tag, Class: class, Multiline: multiline}
	},
	"itemSpec": func(id int64, field, tag, class string, multiline bool, placeholder string) FieldSpec {
		return FieldSpec{Key: field, ItemID: id, Tag: tag, Class: class, Multiline: multiline, Placeholder: placeholder}
	},
	"isLast": func(i int, items []content.UpdateItem) bool {
		return i == len(items)-1
	},
	"profileImage": ProfileImageSrc,
	"jsonld": func(cfg SiteConfig, c content.SiteContent) template.JS {
		return template.JS(PersonJsonLD(cfg, c))
	},
	"link": contactLink,
}).ParseFS(templateFS, "templates/*.html"))

// contactLink allows the tel: scheme, which html/template filters out.
func contactLink(s string) template.URL {
	for _, scheme := range []string{"tel:", "mailto:", "https://", "http://"} {
		if strings.HasPrefix(s, scheme) {
			return template.URL(s)
		}
	}
	return "#"
}

func component(name string, data any) templ.Component {
	return templ.FromGoHTML(templates.Lookup(name), data)
}

// Page renders the whole portfolio.
func Page(d PageData) templ.Component { return component("page", d) }

// Updates renders only the latest-updates section.
func Updates(d PageData) templ.Component { return component("updates", d) }

// Guestbook renders the guestbook block.
func Guestbook(d PageData) templ.Component { return component("guestbook", d) }

// AdminPanel renders the buffered edit form.
func AdminPanel(d AdminData) templ.Component { return component("admin", d) }

// LoginForm renders the standalone login page used by /admin/.
func LoginForm(d LoginData) templ.Component { return component("loginPage", d) }

func NotFound() templ.Component { return component("notFound", nil) }

func ServerError() templ.Component { return component("serverError", nil) }
