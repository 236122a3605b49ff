package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rivulet-dev/rivulet/internal/errors"
	"github.com/rivulet-dev/rivulet/pkg/render"
	"github.com/rivulet-dev/rivulet/pkg/vdom"
)

func homePage(_ *http.Request) (render.PageData, error) {
	return render.PageData{
		Title: "Home",
		Body: vdom.Div(vdom.Class("home"),
			vdom.H1(vdom.Text("Welcome")),
		),
	}, nil
}

func TestServerServesPage(t *testing.T) {
	app := New(nil)
	app.RegisterPage("/", homePage)

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", got)
	}

	html := rec.Body.String()
	if !strings.HasPrefix(html, "<!DOCTYPE html>") {
		t.Error("should start with DOCTYPE")
	}
	if !strings.Contains(html, "<title>Home</title>") {
		t.Errorf("should contain title, got %q", html)
	}
	if !strings.Contains(html, "<h1>Welcome</h1>") {
		t.Errorf("should contain heading, got %q", html)
	}
}

func TestServerRouteParams(t *testing.T) {
	app := New(nil)
	app.RegisterPage("/users/{id}", func(r *http.Request) (render.PageData, error) {
		return render.PageData{
			Title: "User",
			Body:  vdom.Div(vdom.Text(r.URL.Path)),
		}, nil
	})

	req := httptest.NewRequest("GET", "/users/42", nil)
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "/users/42") {
		t.Errorf("should render matched path, got %q", rec.Body.String())
	}
}

func TestServerNotFound(t *testing.T) {
	app := New(nil)
	app.RegisterPage("/", homePage)

	req := httptest.NewRequest("GET", "/missing", nil)
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestServerHealthz(t *testing.T) {
	app := New(nil)

	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "ok" {
		t.Errorf("body = %q, want ok", rec.Body.String())
	}
}

func TestServerPageFuncError(t *testing.T) {
	app := New(nil)
	app.RegisterPage("/boom", func(_ *http.Request) (render.PageData, error) {
		return render.PageData{}, errors.Newf(errors.CategoryRender, "database unavailable")
	})

	req := httptest.NewRequest("GET", "/boom", nil)
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "<!DOCTYPE") {
		t.Error("failed page should not leak partial HTML")
	}
}

func TestServerRenderErrorBeforeFirstFlush(t *testing.T) {
	// A nil body fails before any section flush, so the response must
	// be a clean 500 with no partial document.
	app := New(nil)
	app.RegisterPage("/empty", func(_ *http.Request) (render.PageData, error) {
		return render.PageData{Title: "Empty"}, nil
	})

	req := httptest.NewRequest("GET", "/empty", nil)
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "<html") {
		t.Errorf("should not leak partial HTML, got %q", rec.Body.String())
	}
}

func TestServerMiddleware(t *testing.T) {
	app := New(nil)
	app.RegisterPage("/", homePage)

	var order []string
	app.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "first")
			next.ServeHTTP(w, r)
		})
	})
	app.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "second")
			next.ServeHTTP(w, r)
		})
	})

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("middleware order = %v", order)
	}
}

func TestServerMetricsEndpoint(t *testing.T) {
	app := New(&Config{EnableMetrics: true})
	app.RegisterPage("/", homePage)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestServerRunWithoutPages(t *testing.T) {
	app := New(nil)

	err := app.Run()
	if err == nil {
		t.Fatal("expected error for empty page set")
	}
	rerr, ok := err.(*errors.RivuletError)
	if !ok || rerr.Code != "E080" {
		t.Errorf("expected E080, got %v", err)
	}
}

func TestServerPagesOrder(t *testing.T) {
	app := New(nil)
	app.RegisterPage("/", homePage)
	app.RegisterPage("/about", homePage)

	got := app.Pages()
	if len(got) != 2 || got[0] != "/" || got[1] != "/about" {
		t.Errorf("Pages() = %v", got)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		address string
		wantErr bool
	}{
		{"default", ":8080", false},
		{"host and port", "127.0.0.1:3000", false},
		{"missing port", "localhost", true},
		{"garbage", "not an address", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Address: tt.address}
			cfg.fillDefaults()
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				rerr, ok := err.(*errors.RivuletError)
				if !ok || rerr.Code != "E062" {
					t.Errorf("expected E062, got %v", err)
				}
			}
		})
	}
}
