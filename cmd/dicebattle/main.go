package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/youruser/dicebattle/internal/battle"
	"github.com/youruser/dicebattle/internal/config"
	imagepkg "github.com/youruser/dicebattle/internal/image"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run renders one battle image. stdout carries only the SUCCESS/ERROR line;
// logs and usage go to stderr.
func run(args []string, stdout, stderr io.Writer) int {
	// Validate arguments before touching anything else
	req, err := battle.ParseArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "usage: dicebattle %s\n", battle.Usage)
		fmt.Fprintf(stdout, "ERROR: %v\n", err)
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stdout, "ERROR: failed to load configuration: %v\n", err)
		return 1
	}

	logger, err := newLogger(cfg.LogLevel, stderr)
	if err != nil {
		fmt.Fprintf(stdout, "ERROR: failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	theme, err := imagepkg.NewTheme(cfg.Theme)
	if err != nil {
		logger.Error("Invalid theme", zap.Error(err))
		fmt.Fprintf(stdout, "ERROR: %v\n", err)
		return 1
	}

	composer := imagepkg.NewComposer(imagepkg.Options{
		Layout:        imagepkg.DefaultLayout(),
		Theme:         theme,
		AssetsDir:     cfg.Paths.AssetsDir,
		ScratchDir:    cfg.Paths.ScratchDir,
		FontPath:      cfg.Fonts.Path,
		FontDirs:      cfg.Fonts.Dirs,
		ParallelFetch: cfg.Fetch.Parallel,
	}, imagepkg.NewHTTPFetcher(cfg.Fetch.Timeout), logger)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RunTimeout)
	defer cancel()

	type outcome struct {
		result battle.Result
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		defer composer.Close()
		res, err := composer.Compose(ctx, req)
		done <- outcome{result: res, err: err}
	}()

	select {
	case o := <-done:
		if o.err != nil {
			logger.Error("Failed to create dice battle image", zap.Error(o.err))
			fmt.Fprintf(stdout, "ERROR: %v\n", o.err)
			return 1
		}
		fmt.Fprintln(stdout, o.result.Line())
		return 0
	case <-ctx.Done():
		logger.Error("Image generation timed out", zap.Duration("timeout", cfg.RunTimeout))
		fmt.Fprintln(stdout, "ERROR: image generation timed out")
		return 1
	}
}

func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.Lock(zapcore.AddSync(w)),
		lvl,
	)
	return zap.New(core), nil
}
