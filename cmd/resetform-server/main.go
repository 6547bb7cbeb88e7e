package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/goliatone/go-resetform/pkg/form"
	"github.com/goliatone/go-resetform/pkg/openapi"
	"github.com/goliatone/go-resetform/pkg/render"
	"github.com/goliatone/go-resetform/pkg/renderers/vanilla"
	"github.com/goliatone/go-resetform/pkg/schema"
	"github.com/goliatone/go-resetform/pkg/validation"
)

func main() {
	var (
		addrFlag      = flag.String("addr", ":8383", "HTTP listen address")
		sourceFlag    = flag.String("source", "", "OpenAPI source overriding the built-in form (file path or URL)")
		operationFlag = flag.String("operation", schema.ResetRequestFormID, "Operation ID when loading from an OpenAPI source")
		loginFlag     = flag.String("login-path", schema.DefaultLoginPath, "Path for the back-to-login link")
		pageFlag      = flag.String("page-path", "/forgot-password", "Path serving the reset request page")
		shutdownGrace = flag.Duration("grace", 5*time.Second, "Shutdown grace period")
	)
	flag.Parse()

	descriptor := schema.ResetRequestForm()
	if *sourceFlag != "" {
		src := parseSource(*sourceFlag)
		if src == nil {
			log.Fatalf("invalid source: %q", *sourceFlag)
		}
		loaded, err := loadForm(context.Background(), src, *operationFlag)
		if err != nil {
			log.Fatalf("load form from %s: %v", *sourceFlag, err)
		}
		descriptor = loaded
	}

	renderer, err := vanilla.New()
	if err != nil {
		log.Fatalf("build renderer: %v", err)
	}

	srv := &server{
		descriptor: descriptor,
		renderer:   renderer,
		loginPath:  *loginFlag,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+*pageFlag, srv.pageHandler)
	mux.HandleFunc("POST "+descriptor.Endpoint, srv.submitHandler)
	mux.HandleFunc("GET "+*loginFlag, srv.loginHandler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	httpServer := &http.Server{
		Addr:    *addrFlag,
		Handler: mux,
	}

	log.Printf("listening on %s (page %s submit %s)", *addrFlag, *pageFlag, descriptor.Endpoint)

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errChan:
		log.Fatalf("listen: %v", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), *shutdownGrace)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

type server struct {
	descriptor schema.Form
	renderer   *vanilla.Renderer
	loginPath  string
}

func (s *server) renderOptions(values validation.Values, errs map[string]string) render.RenderOptions {
	return render.RenderOptions{
		Values:    values,
		Errors:    errs,
		LoginPath: s.loginPath,
	}
}

func (s *server) pageHandler(w http.ResponseWriter, r *http.Request) {
	page, err := s.renderer.Render(r.Context(), s.descriptor, s.renderOptions(nil, nil))
	if err != nil {
		log.Printf("render page: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusOK, s.renderer.ContentType(), page)
}

func (s *server) submitHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	controller, err := form.New(s.descriptor, form.WithOnSubmit(s.requestReset))
	if err != nil {
		log.Printf("build controller: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	for _, field := range s.descriptor.Fields {
		controller.SetValue(field.Name, r.PostFormValue(field.Name))
	}

	switch err := controller.Submit(r.Context()); {
	case errors.Is(err, form.ErrValidationFailed):
		page, renderErr := s.renderer.Render(r.Context(), s.descriptor, s.renderOptions(controller.Values(), controller.Errors()))
		if renderErr != nil {
			log.Printf("render errors: %v", renderErr)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeHTML(w, http.StatusUnprocessableEntity, s.renderer.ContentType(), page)
	case err != nil:
		log.Printf("submit: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	default:
		email := controller.Value(schema.ResetRequestField)
		page, renderErr := s.renderer.RenderConfirmation(r.Context(), s.descriptor, email, s.renderOptions(nil, nil))
		if renderErr != nil {
			log.Printf("render confirmation: %v", renderErr)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeHTML(w, http.StatusOK, s.renderer.ContentType(), page)
	}
}

// requestReset is the submit effect. It only fires after the validation gate
// opens; the real mail dispatch belongs to whatever system embeds this server.
func (s *server) requestReset(_ context.Context, values validation.Values) error {
	log.Printf("reset link requested for %s", values[schema.ResetRequestField])
	return nil
}

func (s *server) loginHandler(w http.ResponseWriter, _ *http.Request) {
	writeHTML(w, http.StatusOK, "text/html; charset=utf-8", []byte("<!DOCTYPE html><html><body><h1>Login</h1></body></html>"))
}

func writeHTML(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func loadForm(ctx context.Context, src openapi.Source, operationID string) (schema.Form, error) {
	loader := openapi.NewLoader(openapi.WithHTTPClient(http.DefaultClient))
	doc, err := loader.Load(ctx, src)
	if err != nil {
		return schema.Form{}, err
	}
	return openapi.NewParser().Form(ctx, doc, operationID)
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
