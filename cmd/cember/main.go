// Command cember converts resource files (fonts, icons, ...) into C byte arrays,
// so they can be linked into a binary instead of being loaded at runtime.
//
//	cember --input-dir src/resources/fonts --input-dir src/resources/icons \
//	       --output-source build/builtin_resources.c --output-header build/builtin_resources.h
//
// Subcommands "verify" and "list" check and inspect previously generated output.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/schollz/cli/v2"
	"github.com/schollz/progressbar/v3"

	"github.com/maja42/cember"
	"github.com/maja42/cember/embedding"
	"github.com/maja42/cember/internal/config"
	"github.com/maja42/cember/internal/logger"
)

var version = "dev"

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		zlog.Error().Err(err).Msg("cember failed")
		os.Exit(exitCode(err))
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "cember",
		Usage:   "embed resource files as C byte arrays",
		Version: version,
		Flags:   append(generatorFlags(), progressFlag()),
		Action:  generate,
		Commands: []*cli.Command{
			{
				Name:   "generate",
				Usage:  "write the definitions and declarations (default)",
				Flags:  append(generatorFlags(), progressFlag()),
				Action: generate,
			},
			{
				Name:   "verify",
				Usage:  "check that the generated files match the resources",
				Flags:  generatorFlags(),
				Action: verify,
			},
			{
				Name:      "list",
				Usage:     "list the arrays of a generated definitions file",
				ArgsUsage: "[definitions file]",
				Flags:     generatorFlags(),
				Action:    list,
			},
		},
	}
}

// generatorFlags returns the flags shared by all commands.
// Flags override the config file and environment.
func generatorFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "TOML config file (default: " + config.DefaultFile + " if present)"},
		&cli.StringSliceFlag{Name: "input-dir", Aliases: []string{"i"}, Usage: "directory containing resources (repeatable)"},
		&cli.StringFlag{Name: "output-source", Aliases: []string{"s"}, Usage: "path of the generated definitions"},
		&cli.StringFlag{Name: "output-header", Aliases: []string{"H"}, Usage: "path of the generated declarations"},
		&cli.StringFlag{Name: "guard", Usage: "include guard token (default: derived from the header name)"},
		&cli.StringFlag{Name: "strip", Usage: "extensions removed from symbol names: one, all"},
		&cli.StringFlag{Name: "symlinks", Usage: "symbolic link handling: files, skip, error"},
		&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn, error"},
	}
}

func progressFlag() cli.Flag {
	return &cli.BoolFlag{Name: "progress", Usage: "show a progress bar while reading resources"}
}

// loadConfig merges config file, environment and command line flags.
func loadConfig(c *cli.Context) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, zerolog.Nop(), usageErr(err)
	}
	if c.IsSet("input-dir") {
		cfg.InputDirs = c.StringSlice("input-dir")
	}
	for flag, target := range map[string]*string{
		"output-source": &cfg.OutputSource,
		"output-header": &cfg.OutputHeader,
		"guard":         &cfg.Guard,
		"strip":         &cfg.Strip,
		"symlinks":      &cfg.Symlinks,
		"log-level":     &cfg.LogLevel,
	} {
		if c.IsSet(flag) {
			*target = c.String(flag)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, zerolog.Nop(), usageErr(err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})
	logger.SetGlobalLogger(log)
	return cfg, log, nil
}

func generate(c *cli.Context) error {
	cfg, log, err := loadConfig(c)
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return usageErr(err)
	}

	if c.Bool("progress") {
		var bar *progressbar.ProgressBar
		opts.Progress = func(res embedding.Resource, done, total int) {
			if bar == nil {
				bar = progressbar.NewOptions(total,
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionSetDescription("reading resources"),
					progressbar.OptionShowCount(),
					progressbar.OptionClearOnFinish(),
				)
			}
			_ = bar.Add(1)
			if done == total {
				_ = bar.Finish()
			}
		}
	}

	log.Info().
		Strs("input_dirs", opts.InputDirs).
		Str("source", opts.OutputSource).
		Str("header", opts.OutputHeader).
		Msg("Generating resources")

	if err := embedding.EmbedFiles(opts, logger.Printf(log)); err != nil {
		return err
	}
	log.Info().Msg("Finished")
	return nil
}

func verify(c *cli.Context) error {
	cfg, log, err := loadConfig(c)
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return usageErr(err)
	}

	if err := embedding.Verify(opts, logger.Printf(log)); err != nil {
		return err
	}
	log.Info().
		Str("source", opts.OutputSource).
		Str("header", opts.OutputHeader).
		Msg("Generated files are up to date")
	return nil
}

func list(c *cli.Context) error {
	cfg, _, err := loadConfig(c)
	if err != nil {
		return err
	}
	path := cfg.OutputSource
	if c.Args().Present() {
		path = c.Args().First()
	}

	defs, err := cember.Open(path)
	if err != nil {
		return err
	}
	w := c.App.Writer
	fmt.Fprintf(w, "%s contains %d arrays\n", path, defs.Count())
	for _, name := range defs.List() {
		fmt.Fprintf(w, "%s\t%d bytes\n", name, defs.Size(name))
	}
	return nil
}
