package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/lepinkainen/audiomerge/cmd"
	"github.com/lepinkainen/audiomerge/config"
	"github.com/lepinkainen/audiomerge/logging"
	"github.com/lepinkainen/audiomerge/metrics"
	"github.com/lepinkainen/audiomerge/types"
)

var Version = "dev"

type CLI struct {
	Config      kong.ConfigFlag  `help:"YAML file with flag defaults" placeholder:"FILE"`
	LogFile     string           `help:"Lifecycle log file, empty disables it" default:"${log_file}" type:"path"`
	LogLevel    string           `help:"Log level for the log file" default:"info" enum:"debug,info,warn,error"`
	MetricsFile string           `help:"Write Prometheus metrics to this textfile on exit" type:"path"`
	Version     kong.VersionFlag `help:"Show version and exit"`

	Merge      cmd.MergeCmd      `cmd:"" help:"Concatenate audio files in natural order"`
	Duplicates cmd.DuplicatesCmd `cmd:"" help:"Find duplicate audio files"`
	Duration   cmd.DurationCmd   `cmd:"" help:"Estimate the play duration of audio files"`
	Order      cmd.OrderCmd      `cmd:"" help:"Print files in the order merge would use"`
}

// newAppContext builds the shared command context. The returned cleanup
// writes the metrics textfile and closes the log file.
func (cli *CLI) newAppContext() (*types.AppContext, func(), error) {
	logger, err := logging.New(logging.Config{
		Level:   cli.LogLevel,
		File:    cli.LogFile,
		Console: os.Stderr,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	collector := metrics.NewCollector()
	appCtx := &types.AppContext{
		Version: Version,
		Logger:  logger,
		Metrics: collector,
	}

	cleanup := func() {
		if cli.MetricsFile != "" {
			if err := collector.WriteTextfile(cli.MetricsFile); err != nil {
				logger.Error("failed to write metrics", "path", cli.MetricsFile, "error", err)
			}
		}
		_ = logger.Close()
	}

	return appCtx, cleanup, nil
}

func kongOptions(configPath string) []kong.Option {
	return []kong.Option{
		kong.Name("audiomerge"),
		kong.Description("Merge audio files by concatenating them in natural sort order."),
		kong.UsageOnError(),
		kong.Configuration(config.Loader, configPath),
		kong.Vars{
			"version":  Version,
			"log_file": logging.DefaultFile(),
		},
	}
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli, kongOptions(config.DefaultPath())...)

	appCtx, cleanup, err := cli.newAppContext()
	ctx.FatalIfErrorf(err)

	err = ctx.Run(appCtx)
	cleanup()
	ctx.FatalIfErrorf(err)
}
