package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-settingsforms/internal/demo"
	"github.com/goliatone/go-settingsforms/internal/logging"
	"github.com/goliatone/go-settingsforms/pkg/render"
	"github.com/goliatone/go-settingsforms/pkg/settings"
	"github.com/goliatone/go-settingsforms/pkg/store"
	"github.com/goliatone/go-settingsforms/pkg/tui"
)

func main() {
	configPath := flag.String("config", "settings.json", "settings overlay file (JSON)")
	sqlitePath := flag.String("sqlite", "", "use a SQLite settings database instead of the JSON file")
	defaultsPath := flag.String("defaults", "", "YAML defaults file layered beneath the overlay")
	mode := flag.String("mode", "render", "render | edit | check")
	format := flag.String("format", "", "page renderer for render mode (default: first registered)")
	output := flag.String("output", "", "output file for render mode (stdout if empty)")
	logLevel := flag.String("log-level", "info", "debug | info | warn | error")
	logFile := flag.String("log-file", "", "rotating log file (stderr only if empty)")
	flag.Parse()

	logger := logging.New(
		logging.WithLevelName(*logLevel),
		logging.WithFile(*logFile),
	)

	pageSchema := demo.Schema()

	if *mode == "check" {
		// MustNew already validated key uniqueness; reaching here means the
		// page definition is sound.
		fmt.Printf("schema ok: %d sections\n", len(pageSchema.Sections()))
		return
	}

	st, cleanup, err := openStore(*sqlitePath, *configPath, *defaultsPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case "render":
		renderer, err := selectRenderer(*format)
		if err != nil {
			log.Fatalf("select renderer: %v", err)
		}
		controller, err := settings.New(pageSchema, st,
			settings.WithTitle("Receiver settings"),
			settings.WithRenderer(renderer),
		)
		if err != nil {
			log.Fatalf("build controller: %v", err)
		}
		page, err := controller.RenderPage(ctx)
		if err != nil {
			log.Fatalf("render page: %v", err)
		}
		if *output != "" {
			if err := os.WriteFile(*output, page, 0o644); err != nil {
				log.Fatalf("write output: %v", err)
			}
			fmt.Printf("Page written to %s\n", *output)
		} else {
			fmt.Println(string(page))
		}

	case "edit":
		editor := tui.NewEditor(pageSchema, st)
		if err := editor.Run(ctx); err != nil {
			if err == tui.ErrAborted {
				logger.Info("edit aborted, no changes written")
				return
			}
			log.Fatalf("edit settings: %v", err)
		}
		logger.Info("settings updated")

	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

// selectRenderer resolves the page renderer by name from the renderers this
// binary ships. An empty name picks the default full-page HTML renderer.
func selectRenderer(name string) (render.PageRenderer, error) {
	registry := render.NewRegistry()

	htmlRenderer, err := render.NewHTML()
	if err != nil {
		return nil, err
	}
	registry.MustRegister(htmlRenderer)
	registry.MustRegister(render.NewFragment())

	return registry.Get(name)
}

func openStore(sqlitePath, configPath, defaultsPath string) (store.Store, func(), error) {
	if sqlitePath != "" {
		st, err := store.OpenSQLite(sqlitePath)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { st.Close() }, nil
	}

	opts := []store.FileOption{store.WithDefaults(demo.Defaults())}
	if defaultsPath != "" {
		opts = append(opts, store.WithDefaultsFile(defaultsPath))
	}
	st, err := store.OpenFile(configPath, opts...)
	if err != nil {
		return nil, nil, err
	}
	return st, func() {}, nil
}
