package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"

	"kingdomstudio/internal/adapters/http/middleware"
	"kingdomstudio/internal/application/site"
	"kingdomstudio/internal/domain/blogpost"
	"kingdomstudio/internal/domain/contact"
	"kingdomstudio/internal/domain/registration"
	"kingdomstudio/internal/domain/settings"
)

//go:embed templates/*.html
var templateFS embed.FS

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

var pageNames = []string{
	"home.html",
	"register.html",
	"contact.html",
	"blog_post.html",
	"admin_login.html",
	"admin_dashboard.html",
	"not_found.html",
}

// pageSet maps a page file name to its template joined with the layout.
type pageSet map[string]*template.Template

var funcMap = template.FuncMap{
	"markdown":    renderMarkdown,
	"kes":         formatKES,
	"usd":         settings.ApproxUSD,
	"date":        func(t time.Time) string { return t.Format("January 2, 2006") },
	"dateTime":    func(t time.Time) string { return t.Format("2006-01-02 15:04") },
	"isoDate":     func(t time.Time) string { return t.Format(blogpost.DateLayout) },
	"join":        strings.Join,
	"logoURL":     func(logo string) template.URL { return template.URL(logo) },
	"imageURL":    imageURL,
	"hasString":   hasString,
	"weekdays":    func() []string { return registration.Weekdays },
	"lines":       func(items []string) string { return strings.Join(items, "\n") },
	"whatsapp":    func(c settings.ContactInfo) string { return c.WhatsAppLink() },
	"mailto":      func(d *contact.Draft) template.URL { return template.URL(d.MailtoURL()) },
	"currentYear": func() int { return time.Now().Year() },
}

func parsePages() (pageSet, error) {
	pages := make(pageSet, len(pageNames))
	for _, name := range pageNames {
		tpl, err := template.New("layout.html").Funcs(funcMap).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tpl
	}
	return pages, nil
}

// pageData is what every page template receives.
type pageData struct {
	Title     string
	Snap      site.Snapshot
	Admin     bool
	CSRFField template.HTML
	Notice    string
	Error     string
	Fields    map[string]string // field name -> message
	Form      map[string][]string

	Post  blogpost.BlogPost
	Draft *contact.Draft
}

// Value returns the first submitted value for a form field.
func (p *pageData) Value(name string) string {
	if vs := p.Form[name]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// Checked reports whether value was submitted for name.
func (p *pageData) Checked(name, value string) bool {
	return hasString(p.Form[name], value)
}

// render executes page with the layout at the given status.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, data *pageData) {
	tpl, ok := s.pages[page]
	if !ok {
		s.internalError(w, fmt.Errorf("unknown page %s", page))
		return
	}
	if data == nil {
		data = &pageData{}
	}
	data.Snap = s.site.Snapshot()
	data.CSRFField = csrf.TemplateField(r)
	_, data.Admin = middleware.GetSessionFromContext(r.Context())

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		s.internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// internalError logs the real error and returns a generic message to the client.
func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.logger.Error("internal_error", zap.Error(err))
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// formatKES renders 3500 as "KES 3,500".
func formatKES(amount int) string {
	digits := strconv.Itoa(amount)
	neg := strings.HasPrefix(digits, "-")
	digits = strings.TrimPrefix(digits, "-")
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if neg {
		return "KES -" + b.String()
	}
	return "KES " + b.String()
}

func hasString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// imageURL lets stored post images through the src sanitizer, which
// would otherwise reject data URIs. Anything else renders no image.
func imageURL(raw string) template.URL {
	if strings.HasPrefix(raw, "data:image/") || strings.HasPrefix(raw, "https://") || strings.HasPrefix(raw, "http://") {
		return template.URL(raw)
	}
	return ""
}
