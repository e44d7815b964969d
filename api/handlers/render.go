package handlers

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"go-storefront/internal/models"
	"go-storefront/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// UploadsPath is the public URL prefix for uploaded product images.
const UploadsPath = "/uploads"

// Templates parses the embedded page templates with the storefront helpers.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"price": models.FormatCents,
		"imageURL": func(name string) string {
			return UploadsPath + "/" + url.PathEscape(name)
		},
	}).ParseFS(templateFS, "templates/*.gohtml")
}

// page saves the session (draining its notices into the view) and renders name.
func page(c *gin.Context, sess *session.Session, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	for _, k := range []string{"Title", "Query"} {
		if _, ok := data[k]; !ok {
			data[k] = ""
		}
	}
	data["Notices"] = sess.Notices()
	data["CartUnits"] = sess.Cart().Units()
	data["IsAdmin"] = sess.Authorized()
	if err := sess.Save(c.Request, c.Writer); err != nil {
		zap.L().Error("save session", zap.Error(err))
	}
	c.HTML(status, name, data)
}

// redirect saves the session and sends a 302 to location.
func redirect(c *gin.Context, sess *session.Session, location string) {
	if err := sess.Save(c.Request, c.Writer); err != nil {
		zap.L().Error("save session", zap.Error(err))
	}
	c.Redirect(http.StatusFound, location)
}

func notFound(c *gin.Context, sess *session.Session) {
	page(c, sess, http.StatusNotFound, "error.gohtml", gin.H{
		"Title":   "Not found",
		"Message": "That product does not exist.",
	})
}

func serverError(c *gin.Context, sess *session.Session, err error) {
	zap.L().Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	page(c, sess, http.StatusInternalServerError, "error.gohtml", gin.H{
		"Title":   "Something went wrong",
		"Message": "Please try again in a moment.",
	})
}
