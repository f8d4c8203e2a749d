package web

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Sairam-Chetpelly/visafrontend/internal/core/domain"
)

type view struct {
	Title         string
	Error         string
	Notice        string
	Email         string
	User          *domain.User
	Form          domain.RegistrationForm
	RedirectTo    domain.Route
	RedirectAfter int
}

func TestRenderer_AllPagesParse(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	for name := range pages {
		var buf bytes.Buffer
		if err := r.Render(&buf, name, view{Title: name}, nil); err != nil {
			t.Fatalf("render %s: %v", name, err)
		}
		if !strings.Contains(buf.String(), "<title>"+name) {
			t.Fatalf("render %s: layout missing", name)
		}
	}
}

func TestRenderer_RedirectPageRefreshes(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	var buf bytes.Buffer
	err = r.Render(&buf, "redirect", view{
		Title:         "Login Successful",
		Notice:        "Welcome back!",
		RedirectTo:    domain.RouteAdminDashboard,
		RedirectAfter: 1,
	}, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), `content="1;url=/admin-dashboard"`) {
		t.Fatalf("missing meta refresh: %s", buf.String())
	}
}

func TestRenderer_EscapesErrors(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, "login", view{Error: "<script>x</script>"}, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(buf.String(), "<script>x") {
		t.Fatalf("error message was not escaped")
	}
}

func TestRenderer_UnknownPage(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	if err := r.Render(&bytes.Buffer{}, "nope", nil, nil); err == nil {
		t.Fatalf("expected error for unknown page")
	}
}
