package webapp

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"heladeria-storefront/internal/domain"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"money":       money,
		"statusLabel": statusLabel,
		"statusClass": statusClass,
	}).ParseFS(templatesFS, "templates/*.tmpl")
}

// money renders a peso amount: thousands separated, cents only when the
// amount is fractional.
func money(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}
	parts := strings.SplitN(s, ".", 2)
	intPart, frac := parts[0], parts[1]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := sign + "$" + b.String()
	if frac != "00" {
		out += "." + frac
	}
	return out
}

func statusLabel(s domain.OrderStatus) string {
	return s.Label()
}

// statusClass maps a status to its badge CSS class suffix.
func statusClass(s domain.OrderStatus) string {
	return strings.ToLower(strings.ReplaceAll(string(s), "_", ""))
}

// Flash messages travel as query parameters across redirects; every page
// template renders Message/Error banners when present.
func flash(c *gin.Context) (msg, errMsg string) {
	return c.Query("msg"), c.Query("err")
}

func redirectWithMessage(c *gin.Context, path, msg string) {
	c.Redirect(http.StatusFound, path+"?msg="+url.QueryEscape(msg))
}

func redirectWithError(c *gin.Context, path, errMsg string) {
	c.Redirect(http.StatusFound, path+"?err="+url.QueryEscape(errMsg))
}
