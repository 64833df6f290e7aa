// Package commands implements the CLI subcommands: serving the API and the
// store maintenance tasks.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"postboard/app/config"
	"postboard/app/repositories"
	"postboard/app/routes"
	"postboard/app/seed"
	"postboard/app/services"

	"github.com/rs/zerolog"
)

var ErrUnknownCommand = errors.New("unknown command")

// Runner executes subcommands against the configured store.
type Runner struct {
	Config *config.Config
	Log    zerolog.Logger
	// Out receives user-facing messages; In answers confirmation prompts.
	Out io.Writer
	In  io.Reader
}

// NewRunner creates a Runner talking to the terminal.
func NewRunner(cfg *config.Config, log zerolog.Logger) *Runner {
	return &Runner{Config: cfg, Log: log, Out: os.Stdout, In: os.Stdin}
}

// Run dispatches cmd. ctx cancellation stops a running server.
func (r *Runner) Run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "serve":
		return r.serve(ctx)
	case "seed":
		return r.seedStore(ctx)
	case "backup":
		if len(args) < 1 {
			return errors.New("backup file path required")
		}
		return r.backup(args[0])
	case "restore":
		if len(args) < 1 {
			return errors.New("backup file path required for restore")
		}
		return r.restore(ctx, args[0], hasFlag(args[1:], "--yes"))
	case "clean":
		return r.clean(ctx, hasFlag(args, "--yes"))
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

func (r *Runner) openStore() (*repositories.Store, error) {
	store, err := repositories.Open(repositories.Options{
		Driver:     r.Config.Store,
		BadgerPath: r.Config.BadgerPath,
		DSN:        r.Config.DatabaseURL,
		Logger:     r.Log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", r.Config.Store, err)
	}
	return store, nil
}

func (r *Runner) closeStore(store *repositories.Store) {
	if err := store.Close(); err != nil {
		r.Log.Error().Err(err).Msg("failed to close store")
	}
}

// serve runs the HTTP API until ctx is cancelled
func (r *Runner) serve(ctx context.Context) error {
	store, err := r.openStore()
	if err != nil {
		return err
	}
	defer r.closeStore(store)

	handler := routes.SetupRoutes(store.Posts, store.Comments, routes.Options{
		APIPrefix: r.Config.APIPrefix,
		Logger:    r.Log,
	})
	srv := routes.NewServer(r.Config.Addr, handler)

	r.Log.Info().Str("store", r.Config.Store).Str("api_prefix", r.Config.APIPrefix).Msg("blog service ready")
	return routes.StartServer(ctx, srv, r.Config.ShutdownTimeout, r.Log)
}

// seedStore inserts the sample posts into an empty store
func (r *Runner) seedStore(ctx context.Context) error {
	store, err := r.openStore()
	if err != nil {
		return err
	}
	defer r.closeStore(store)

	n, err := seed.Run(ctx, services.NewPostService(store.Posts), services.NewCommentService(store.Comments), r.Log)
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Fprintln(r.Out, "Store already has posts, nothing seeded")
		return nil
	}
	fmt.Fprintf(r.Out, "Seeded %d posts\n", n)
	return nil
}

// backup writes a full copy of the store to path
func (r *Runner) backup(path string) error {
	store, err := r.openStore()
	if err != nil {
		return err
	}
	defer r.closeStore(store)
	if !store.SupportsBackup() {
		return fmt.Errorf("failed to backup %s store: %w", r.Config.Store, repositories.ErrUnsupported)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}

	if err := store.Backup(f); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to backup store: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}

	fmt.Fprintf(r.Out, "Store backed up successfully to %s\n", path)
	return nil
}

// restore replaces the store contents with a backup
func (r *Runner) restore(ctx context.Context, path string, yes bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()

	store, err := r.openStore()
	if err != nil {
		return err
	}
	defer r.closeStore(store)
	if !store.SupportsBackup() {
		return fmt.Errorf("failed to restore %s store: %w", r.Config.Store, repositories.ErrUnsupported)
	}

	posts, err := store.Posts.List(ctx, repositories.Include{})
	if err != nil {
		return err
	}
	if len(posts) > 0 && !yes {
		if !r.confirm("Existing posts found. Do you want to replace them?") {
			fmt.Fprintln(r.Out, "Operation cancelled")
			return nil
		}
	}

	if err := store.Restore(f); err != nil {
		return fmt.Errorf("failed to restore store: %w", err)
	}

	fmt.Fprintln(r.Out, "Store restored successfully")
	return nil
}

// clean removes every post and comment
func (r *Runner) clean(ctx context.Context, yes bool) error {
	if !yes && !r.confirm("Are you sure you want to clean the store? This cannot be undone.") {
		fmt.Fprintln(r.Out, "Operation cancelled")
		return nil
	}

	store, err := r.openStore()
	if err != nil {
		return err
	}
	defer r.closeStore(store)

	if err := store.Clear(); err != nil {
		return fmt.Errorf("failed to clean store: %w", err)
	}
	fmt.Fprintln(r.Out, "Store cleaned successfully")
	return nil
}

func (r *Runner) confirm(question string) bool {
	fmt.Fprintf(r.Out, "%s [y/N] ", question)
	var response string
	fmt.Fscanln(r.In, &response)
	return response == "y" || response == "Y"
}
