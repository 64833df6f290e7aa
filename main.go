package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"postboard/app/commands"
	"postboard/app/config"
	"postboard/app/logging"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
		return
	case "version":
		fmt.Printf("postboard version %s\n", cliVersion)
		return
	}

	if err := run(cmd, os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		if errors.Is(err, commands.ErrUnknownCommand) {
			printHelp()
		}
		os.Exit(1)
	}
}

func run(cmd string, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return commands.NewRunner(cfg, log).Run(ctx, cmd, args)
}

func printHelp() {
	helpText := `Usage: postboard <command> [options]
Commands:
  help                     Display this help message.
  version                  Show version information.
  serve                    Run the blog HTTP API.
  seed                     Insert sample posts and comments into an empty store.
  backup <file>            Write a full backup of the store (badger only).
  restore <file> [--yes]   Replace the store contents with a backup (badger only).
  clean [--yes]            Remove every post and comment.

Configuration is read from blog.yaml, .env and BLOG_* environment variables
(BLOG_ADDR, BLOG_API_PREFIX, BLOG_STORE, BLOG_BADGER_PATH, BLOG_DATABASE_URL,
BLOG_LOG_LEVEL, BLOG_LOG_FORMAT, BLOG_SHUTDOWN_TIMEOUT).
`
	fmt.Println(helpText)
}
