package routes

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"postboard/app/controllers"
	"postboard/app/middleware"
	"postboard/app/repositories"
	"postboard/app/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Options configures the HTTP surface.
type Options struct {
	// APIPrefix is the path every endpoint is mounted under, e.g. "/api".
	APIPrefix string
	Logger    zerolog.Logger
}

// SetupRoutes wires services and controllers over the given repositories and
// returns the application's handler.
func SetupRoutes(posts repositories.PostRepository, comments repositories.CommentRepository, opts Options) http.Handler {
	postService := services.NewPostService(posts)
	commentService := services.NewCommentService(comments)

	postController := controllers.NewPostController(postService)
	commentController := controllers.NewCommentController(commentService, postService)

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(jsonError(http.StatusNotFound, "Not found"))
	router.MethodNotAllowedHandler = http.HandlerFunc(jsonError(http.StatusMethodNotAllowed, "Method not allowed"))

	api := router
	if prefix := strings.TrimRight(opts.APIPrefix, "/"); prefix != "" {
		api = router.PathPrefix(prefix).Subrouter()
	}
	api.Use(middleware.ContentTypeJSON)

	// Posts API endpoints
	apiPosts := api.PathPrefix("/posts").Subrouter()
	apiPosts.HandleFunc("", postController.Index).Methods(http.MethodGet)
	apiPosts.HandleFunc("", postController.Create).Methods(http.MethodPost)
	apiPosts.HandleFunc("/{id}", postController.Show).Methods(http.MethodGet)

	// Comments API endpoints
	apiPosts.HandleFunc("/{id}/comments", commentController.Create).Methods(http.MethodPost)

	// Global middleware wraps the router itself so unmatched requests are
	// logged and tagged with a request id too.
	return middleware.Logger(opts.Logger)(middleware.Recoverer(router))
}

func jsonError(status int, msg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"error":"` + msg + `"}` + "\n"))
	}
}

// NewServer builds the HTTP server for handler.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// StartServer serves until ctx is cancelled, then shuts the server down,
// giving in-flight requests up to shutdownTimeout to finish.
func StartServer(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, log zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
