package render

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-settingsforms/pkg/render/template"
	"github.com/goliatone/go-settingsforms/pkg/render/template/gotemplate"
)

// HTMLOption configures the HTML page renderer.
type HTMLOption func(*htmlConfig)

type htmlConfig struct {
	templates    fs.FS
	templateName string
	renderer     template.TemplateRenderer
	themeCfg     *theme.RendererConfig
}

// WithTemplatesFS overrides the embedded template set.
func WithTemplatesFS(files fs.FS) HTMLOption {
	return func(cfg *htmlConfig) {
		cfg.templates = files
	}
}

// WithTemplateName selects which template renders the page. Defaults to
// "settings".
func WithTemplateName(name string) HTMLOption {
	return func(cfg *htmlConfig) {
		trimmed := strings.TrimSpace(name)
		if trimmed != "" {
			cfg.templateName = trimmed
		}
	}
}

// WithTemplateRenderer supplies a pre-built engine instead of the default
// pongo2-backed one.
func WithTemplateRenderer(renderer template.TemplateRenderer) HTMLOption {
	return func(cfg *htmlConfig) {
		cfg.renderer = renderer
	}
}

// WithTheme applies a theme configuration. Token values become CSS class
// names in the page chrome and AssetURL resolves the stylesheet link.
func WithTheme(cfg *theme.RendererConfig) HTMLOption {
	return func(c *htmlConfig) {
		c.themeCfg = cfg
	}
}

// HTMLRenderer produces a full HTML document for a settings page.
type HTMLRenderer struct {
	engine       template.TemplateRenderer
	templateName string
	themeCtx     map[string]any
}

var _ PageRenderer = (*HTMLRenderer)(nil)

// NewHTML builds an HTML renderer backed by the embedded templates unless
// options say otherwise.
func NewHTML(opts ...HTMLOption) (*HTMLRenderer, error) {
	cfg := &htmlConfig{
		templateName: "settings",
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	engine := cfg.renderer
	if engine == nil {
		files := cfg.templates
		if files == nil {
			sub, err := fs.Sub(templatesFS, "templates")
			if err != nil {
				return nil, fmt.Errorf("render: open embedded templates: %w", err)
			}
			files = sub
		}
		built, err := gotemplate.New(gotemplate.WithFS(files))
		if err != nil {
			return nil, fmt.Errorf("render: build template engine: %w", err)
		}
		engine = built
	}

	return &HTMLRenderer{
		engine:       engine,
		templateName: cfg.templateName,
		themeCtx:     themeContext(cfg.themeCfg),
	}, nil
}

func (r *HTMLRenderer) Name() string        { return "html" }
func (r *HTMLRenderer) ContentType() string { return "text/html; charset=utf-8" }

// RenderPage renders the page template with the assembled form markup.
func (r *HTMLRenderer) RenderPage(ctx context.Context, page Page) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	method := page.Method
	if method == "" {
		method = "POST"
	}

	data := map[string]any{
		"title":  page.Title,
		"form":   page.FormHTML,
		"errors": page.Errors,
		"action": page.Action,
		"method": method,
		"theme":  r.themeCtx,
	}

	rendered, err := r.engine.RenderTemplate(r.templateName, data)
	if err != nil {
		return nil, fmt.Errorf("render: render page: %w", err)
	}
	return []byte(rendered), nil
}

// themeContext flattens the parts of a theme configuration the settings
// template consumes.
func themeContext(cfg *theme.RendererConfig) map[string]any {
	ctx := map[string]any{
		"page_class":   "sf-page",
		"button_class": "sf-button",
		"stylesheet":   "",
	}
	if cfg == nil {
		return ctx
	}
	if class, ok := cfg.Tokens["settings.page"]; ok && class != "" {
		ctx["page_class"] = class
	}
	if class, ok := cfg.Tokens["settings.button"]; ok && class != "" {
		ctx["button_class"] = class
	}
	if cfg.AssetURL != nil {
		ctx["stylesheet"] = cfg.AssetURL("settings.stylesheet")
	}
	return ctx
}
