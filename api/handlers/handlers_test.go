package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-storefront/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		invalid bool
	}{
		{in: "", want: 0},
		{in: "19.99", want: 1999},
		{in: " 5 ", want: 500},
		{in: "0.1", want: 10},
		{in: "12.346", want: 1235},
		{in: "-1", invalid: true},
		{in: "abc", invalid: true},
		{in: "NaN", invalid: true},
		{in: "Inf", invalid: true},
		{in: "1e17", invalid: true},
		{in: "1e300", invalid: true},
		{in: "1000000", want: 100000000},
	}
	for _, tc := range cases {
		got, err := parsePrice(tc.in)
		if tc.invalid {
			if !models.IsValidation(err) {
				t.Fatalf("parsePrice(%q) error = %v, want validation error", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("parsePrice(%q) = %d, %v; want %d", tc.in, got, err, tc.want)
		}
	}
}

func TestLimitBody(t *testing.T) {
	router := gin.New()
	router.POST("/upload", LimitBody(8), func(c *gin.Context) {
		buf := new(bytes.Buffer)
		if _, err := buf.ReadFrom(c.Request.Body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("small")))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("small body = %d, want 204", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("way too large")))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("declared large body = %d, want 413", rec.Code)
	}

	// unknown length is still capped while reading
	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("way too large"))
	req.ContentLength = -1
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("streamed large body = %d, want 413", rec.Code)
	}
}

func TestRecoveryReturns500(t *testing.T) {
	router := gin.New()
	router.Use(RequestLogger(zap.NewNop()), Recovery(zap.NewNop()))
	router.GET("/boom", func(c *gin.Context) { panic("boom") })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestTemplatesRenderPrices(t *testing.T) {
	tmpl, err := Templates()
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "index.gohtml", gin.H{
		"Title": "", "Query": "", "CartUnits": 0, "IsAdmin": false, "Notices": []string{},
		"Products": []models.Product{{ID: 7, Name: "Mug", PriceCents: 1250, Image: "a b.png"}},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "12.50") || !strings.Contains(out, "/product/7") || !strings.Contains(out, "/uploads/a%20b.png") {
		t.Fatalf("rendered index = %s", out)
	}
}
