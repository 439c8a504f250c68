package terminal

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/de-tools/gpu-atlas/pkg/models/domain"
	"github.com/de-tools/gpu-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/gpu-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/gpu-atlas/pkg/services/config"
	"github.com/de-tools/gpu-atlas/pkg/services/cost"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	options   Options
	settings  *config.Settings
	estimator cost.Estimator
	rootCmd   *cobra.Command

	configPath   string
	output       string
	logLevel     string
	profilesPath string
	profile      string
}

// Options contain configuration for the CLI
type Options struct {
	// Estimator overrides the engine built from settings
	Estimator cost.Estimator
	Reporters export.Registry
	Output    io.Writer
	ErrOutput io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ErrOutput == nil {
		opts.ErrOutput = os.Stderr
	}
	if opts.Reporters == nil {
		opts.Reporters = export.DefaultRegistry()
	}

	cli := &CLI{options: opts}
	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// SetArgs overrides os.Args, mostly for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "gpucost",
		Short:             "GPU cost and throughput estimation tool",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: cli.setup,
	}
	cmd.SetOut(cli.options.Output)
	cmd.SetErr(cli.options.ErrOutput)

	flags := cmd.PersistentFlags()
	flags.StringVar(&cli.configPath, "config", config.HomePath(config.DefaultSettingsFile), "Path to the settings file")
	flags.StringVarP(&cli.output, "output", "o", "", "Output format (table, markdown, json, yaml)")
	flags.StringVar(&cli.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&cli.profilesPath, "profiles", config.HomePath(config.DefaultProfilesFile), "Path to the workload profiles file")
	flags.StringVar(&cli.profile, "profile", "", "Workload profile that fills unset flags")

	cmd.AddCommand(commands.NewTrainCmd(cli))
	cmd.AddCommand(commands.NewInferCmd(cli))
	cmd.AddCommand(commands.NewCompareCmd(cli))
	cmd.AddCommand(commands.NewHoursCmd(cli))
	cmd.AddCommand(commands.NewCatalogCmd(cli))

	return cmd
}

// setup loads settings, attaches the logger and builds the engine.
func (cli *CLI) setup(cmd *cobra.Command, _ []string) error {
	settings, err := config.LoadSettings(cli.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("output") {
		settings.Output = cli.output
	}
	if cmd.Flags().Changed("log-level") {
		settings.LogLevel = cli.logLevel
	}
	cli.settings = settings

	level, err := settings.Level(zerolog.WarnLevel)
	if err != nil {
		return err
	}
	logger := zerolog.New(cli.options.ErrOutput).With().Timestamp().Logger().Level(level)
	cmd.SetContext(logger.WithContext(cmd.Context()))
	logger.Debug().
		Str("output", settings.Output).
		Str("catalog_file", settings.CatalogFile).
		Msg("settings loaded")

	if _, err := cli.options.Reporters.Create(settings.Output, io.Discard); err != nil {
		return err
	}

	if cli.options.Estimator != nil {
		cli.estimator = cli.options.Estimator
		return nil
	}

	catalog, err := config.LoadCatalog(settings.CatalogFile)
	if err != nil {
		return err
	}
	if settings.CatalogFile != "" {
		logger.Debug().Str("path", settings.CatalogFile).Msg("loaded catalog override")
	}
	cli.estimator = cost.NewEngine(catalog.Rates, catalog.Throughput)
	return nil
}

func (cli *CLI) Estimator() cost.Estimator {
	return cli.estimator
}

func (cli *CLI) ApplyProfile(cmd *cobra.Command, t domain.ProfileType) error {
	if cli.profile == "" {
		return nil
	}
	logger := zerolog.Ctx(cmd.Context())

	registry, err := config.NewRegistry(cli.profilesPath)
	if err != nil {
		return err
	}
	profile, err := registry.GetProfile(cmd.Context(), cli.profile)
	if err != nil {
		return err
	}
	if !profile.AppliesTo(t) {
		return fmt.Errorf("profile %s cannot be used for %s estimates", profile, t)
	}

	for _, name := range config.Keys(profile) {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			logger.Debug().Str("profile", profile.Name).Str("key", name).Msg("profile key has no matching flag")
			continue
		}
		if flag.Changed {
			continue
		}
		if err := cmd.Flags().Set(name, profile.Values[name]); err != nil {
			return fmt.Errorf("profile %s: invalid value for %s: %w", profile.Name, name, err)
		}
	}

	logger.Debug().Str("profile", profile.String()).Msg("applied profile")
	return nil
}

func (cli *CLI) Render(_ *cobra.Command, out export.Output) error {
	var buf bytes.Buffer
	reporter, err := cli.options.Reporters.Create(cli.settings.Output, &buf)
	if err != nil {
		return err
	}
	if err := reporter.Handle(out); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	_, err = buf.WriteTo(cli.options.Output)
	return err
}
