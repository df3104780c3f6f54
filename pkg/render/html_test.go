package render

import (
	"context"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"
)

func TestHTMLRendererRendersPage(t *testing.T) {
	renderer, err := NewHTML()
	if err != nil {
		t.Fatalf("NewHTML: %v", err)
	}

	page := Page{
		Title:    "Receiver settings",
		FormHTML: `<div class="sf-section">form goes here</div>`,
		Action:   "/settings",
	}
	output, err := renderer.RenderPage(context.Background(), page)
	if err != nil {
		t.Fatalf("RenderPage: %v", err)
	}

	html := string(output)
	for _, want := range []string{
		"<title>Receiver settings</title>",
		`action="/settings"`,
		`method="POST"`,
		"form goes here",
		">Apply<",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q:\n%s", want, html)
		}
	}
	if strings.Contains(html, "sf-errors") {
		t.Fatalf("error block rendered without errors:\n%s", html)
	}
}

func TestHTMLRendererShowsSubmissionErrors(t *testing.T) {
	renderer, err := NewHTML()
	if err != nil {
		t.Fatalf("NewHTML: %v", err)
	}

	output, err := renderer.RenderPage(context.Background(), Page{
		Title:    "Settings",
		FormHTML: "<div></div>",
		Errors:   []string{`fft_fps: "fast" is not a whole number`},
	})
	if err != nil {
		t.Fatalf("RenderPage: %v", err)
	}

	html := string(output)
	if !strings.Contains(html, "sf-errors") {
		t.Fatalf("error block missing:\n%s", html)
	}
	if !strings.Contains(html, "not a whole number") {
		t.Fatalf("error message missing:\n%s", html)
	}
}

func TestHTMLRendererAppliesTheme(t *testing.T) {
	cfg := &theme.RendererConfig{
		Theme: "acme",
		Tokens: map[string]string{
			"settings.page":   "acme-page",
			"settings.button": "acme-button",
		},
		AssetURL: func(key string) string {
			return "/themes/acme/" + key
		},
	}

	renderer, err := NewHTML(WithTheme(cfg))
	if err != nil {
		t.Fatalf("NewHTML: %v", err)
	}
	output, err := renderer.RenderPage(context.Background(), Page{
		Title:    "Settings",
		FormHTML: "<div></div>",
	})
	if err != nil {
		t.Fatalf("RenderPage: %v", err)
	}

	html := string(output)
	for _, want := range []string{
		`class="acme-page"`,
		`class="acme-button"`,
		`href="/themes/acme/settings.stylesheet"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q:\n%s", want, html)
		}
	}
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()

	renderer, err := NewHTML()
	if err != nil {
		t.Fatalf("NewHTML: %v", err)
	}
	if err := registry.Register(renderer); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := registry.Register(renderer); err == nil {
		t.Fatal("Register accepted a duplicate name")
	}
	registry.MustRegister(NewFragment())

	got, err := registry.Get("fragment")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name() != "fragment" {
		t.Fatalf("Get(fragment) returned %q", got.Name())
	}
	if _, err := registry.Get("preact"); err == nil {
		t.Fatal("Get accepted an unknown renderer name")
	}

	// An empty name and Default both resolve to the first registration.
	byEmpty, err := registry.Get("")
	if err != nil {
		t.Fatalf("Get(empty): %v", err)
	}
	byDefault, err := registry.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if byEmpty.Name() != "html" || byDefault.Name() != "html" {
		t.Fatalf("default resolution = %q / %q, want html", byEmpty.Name(), byDefault.Name())
	}

	if !registry.Has("html") {
		t.Fatal("Has(html) = false")
	}
	if names := registry.Names(); len(names) != 2 || names[0] != "html" || names[1] != "fragment" {
		t.Fatalf("Names = %v", names)
	}
}

func TestEmptyRegistryHasNoDefault(t *testing.T) {
	if _, err := NewRegistry().Default(); err == nil {
		t.Fatal("Default on an empty registry did not fail")
	}
}

func TestFragmentRendererOmitsChrome(t *testing.T) {
	output, err := NewFragment().RenderPage(context.Background(), Page{
		Title:    "Receiver settings",
		FormHTML: `<div class="sf-section">form goes here</div>` + "\n",
		Action:   "/settings",
		Errors:   []string{`fft_fps: "fast" is not a whole number`},
	})
	if err != nil {
		t.Fatalf("RenderPage: %v", err)
	}

	html := string(output)
	for _, want := range []string{
		`action="/settings"`,
		`method="POST"`,
		"form goes here",
		"sf-errors",
		"not a whole number",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q:\n%s", want, html)
		}
	}
	for _, reject := range []string{"<html", "<head", "<body", "<title"} {
		if strings.Contains(html, reject) {
			t.Errorf("fragment contains document chrome %q:\n%s", reject, html)
		}
	}
}
