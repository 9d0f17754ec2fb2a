package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"zyapi/internal/commander"
	"zyapi/internal/config"
	"zyapi/pkg/log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev"

var errUnknownCommand = errors.New("unknown command")

func Start() error {
	logger := log.NewZapLogger("zyapi", log.ParseLevel(config.LogLevel(), zapcore.WarnLevel))
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return Run(ctx, logger, os.Args[1:], os.Stdout, os.Stderr)
}

// Run dispatches args to the registered subcommands.
func Run(ctx context.Context, logger *zap.SugaredLogger, args []string, stdout, stderr io.Writer) error {
	cmdr := commander.NewCommander(logger)
	cmdr.Register("call", &callCommand{
		logs:      logger,
		newClient: newClientFromEnv,
		out:       newPrinter(stdout),
		stderr:    stderr,
	})
	cmdr.Register("version", commander.ExecutorFunc(func(context.Context, []string) error {
		_, err := fmt.Fprintf(stdout, "zyapi %s\n", version)
		return err
	}))

	if len(args) == 0 {
		printUsage(stderr, cmdr.Names())
		return errUnknownCommand
	}

	result, err := cmdr.Execute(ctx, args[0], args[1:])
	if result == commander.NotFound {
		printUsage(stderr, cmdr.Names())
		return fmt.Errorf("%w: %s", errUnknownCommand, args[0])
	}
	return err
}

func printUsage(w io.Writer, commands []string) {
	fmt.Fprintln(w, "usage: zyapi <command> [flags] [args]")
	fmt.Fprintln(w, "commands:")
	for _, name := range commands {
		fmt.Fprintf(w, "  %s\n", name)
	}
}
