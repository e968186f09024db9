// Command templatermd renders a markdown document to a branded PDF via
// pandoc and a LaTeX engine.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/danwwilson/templatermd"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	flags, positional, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := newLogger(flags.verbose)

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		log.Debug().Msgf(format, args...)
	}))

	if err := run(flags, positional, log); err != nil {
		log.Error().Err(err).Msg("render failed")
		os.Exit(1)
	}
}

// newLogger builds a console logger; debug level only when verbose.
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// run dispatches the requested operation.
func run(flags *cliFlags, positional []string, log zerolog.Logger) error {
	if flags.version {
		fmt.Println("templatermd " + Version)
		return nil
	}

	if flags.sweep {
		removed, err := templatermd.SweepTempIncludes()
		if err != nil {
			return err
		}
		log.Info().Int("removed", removed).Msg("swept orphaned temp files")
		return nil
	}

	if len(positional) != 1 {
		return usageError("expected exactly one input file")
	}
	inputPath := positional[0]

	if err := validateMarkdownExtension(inputPath); err != nil {
		return err
	}

	format, err := templatermd.Compile(flags.toOptions())
	if err != nil {
		return err
	}
	defer format.Cleanup()

	log.Debug().Strs("args", format.Args).Msg("compiled pandoc arguments")

	renderer := templatermd.NewRenderer()
	out, err := renderer.Render(context.Background(), format, templatermd.RenderInput{
		InputPath:  inputPath,
		OutputPath: flags.output,
	})
	if err != nil {
		return err
	}

	log.Info().Str("output", out).Msg("rendered")
	return nil
}

// validateMarkdownExtension rejects inputs that are not markdown files.
func validateMarkdownExtension(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return nil
	}
	return usageError(fmt.Sprintf("%s: file must have .md or .markdown extension", path))
}
