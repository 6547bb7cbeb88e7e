package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/goliatone/go-resetform/pkg/openapi"
	"github.com/goliatone/go-resetform/pkg/render"
	"github.com/goliatone/go-resetform/pkg/renderers/tui"
	"github.com/goliatone/go-resetform/pkg/renderers/vanilla"
	"github.com/goliatone/go-resetform/pkg/schema"
)

func main() {
	opID := flag.String("operation", schema.ResetRequestFormID, "operation ID when loading from an OpenAPI source")
	rendererName := flag.String("renderer", "vanilla", "renderer to use (vanilla or tui)")
	output := flag.String("output", "", "output file (stdout if empty)")
	source := flag.String("source", "", "OpenAPI document path or URL (built-in form if empty)")
	loginPath := flag.String("login-path", schema.DefaultLoginPath, "path for the back-to-login link")
	format := flag.String("format", string(tui.OutputFormatJSON), "tui output format (json, form, pretty)")
	flag.Parse()

	ctx := context.Background()

	descriptor := schema.ResetRequestForm()
	if *source != "" {
		src := parseSource(*source)
		if src == nil {
			log.Fatalf("invalid source: %q", *source)
		}
		loader := openapi.NewLoader(openapi.WithHTTPClient(http.DefaultClient))
		doc, err := loader.Load(ctx, src)
		if err != nil {
			log.Fatalf("load source: %v", err)
		}
		descriptor, err = openapi.NewParser().Form(ctx, doc, *opID)
		if err != nil {
			log.Fatalf("extract operation: %v", err)
		}
	}

	registry := render.NewRegistry()
	registry.MustRegister(mustVanilla())
	registry.MustRegister(mustTUI(tui.OutputFormat(*format)))

	renderer, err := registry.Get(*rendererName)
	if err != nil {
		log.Fatalf("select renderer: %v (have: %s)", err, strings.Join(registry.List(), ", "))
	}

	result, err := renderer.Render(ctx, descriptor, render.RenderOptions{LoginPath: *loginPath})
	if err != nil {
		log.Fatalf("render: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, result, 0o644); err != nil {
			log.Fatalf("write output: %v", err)
		}
		fmt.Printf("Output written to %s\n", *output)
	} else {
		fmt.Println(string(result))
	}
}

func mustVanilla() render.Renderer {
	renderer, err := vanilla.New()
	if err != nil {
		log.Fatalf("build vanilla renderer: %v", err)
	}
	return renderer
}

func mustTUI(format tui.OutputFormat) render.Renderer {
	renderer, err := tui.New(tui.WithOutputFormat(format))
	if err != nil {
		log.Fatalf("build tui renderer: %v", err)
	}
	return renderer
}

func parseSource(raw string) openapi.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return openapi.SourceFromURL(path)
	}
	return openapi.SourceFromFile(path)
}
