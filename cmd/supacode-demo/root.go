// Package supacodedemo wires the supacode-demo command line: operation submission, the demo
// HTTP server and the documentation listings.
package supacodedemo

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/supacode-demo/internal/config"
	"github.com/temirov/supacode-demo/internal/fsops"
	"github.com/temirov/supacode-demo/internal/logging"
)

// application carries the state resolved by the root command before any subcommand runs.
type application struct {
	configPath        string
	logLevel          string
	rootConfiguration config.Root
	logger            *zap.Logger
	store             fsops.Store
}

func NewRootCommand() *cobra.Command {
	app := &application{
		configPath: defaultConfigPath,
		logger:     zap.NewNop(),
		store:      fsops.NewOS(),
	}

	rootCommand := &cobra.Command{
		Use:           applicationName,
		Short:         rootCommandShort,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.initialize()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = app.logger.Sync()
		},
	}

	rootCommand.PersistentFlags().StringVar(&app.configPath, configFlagName, defaultConfigPath, configFlagUsage)
	rootCommand.PersistentFlags().StringVar(&app.logLevel, logLevelFlagName, "", logLevelFlagUsage)

	rootCommand.AddCommand(
		newOperationsCommand(app),
		newSubmitCommand(app),
		newServeCommand(app),
		newListingsCommand(app),
	)
	return rootCommand
}

func Execute() error {
	return NewRootCommand().Execute()
}

func (app *application) initialize() error {
	rootConfiguration, loadErr := loadRootConfiguration(app.configPath)
	if loadErr != nil {
		return loadErr
	}
	if app.logLevel != "" {
		rootConfiguration.Common.Logging.Level = app.logLevel
	}

	logger, loggerErr := logging.New(rootConfiguration.Common.Logging)
	if loggerErr != nil {
		return fmt.Errorf(loggerInitializationErrorFormat, loggerErr)
	}

	app.rootConfiguration = rootConfiguration
	app.logger = logger
	app.logger.Debug("configuration loaded",
		zap.Bool("endpoint_configured", rootConfiguration.Extension.EdgeFunctionURL != ""),
		zap.Duration("delay", rootConfiguration.SimulatedDelay()))
	return nil
}
