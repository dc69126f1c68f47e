package supacodedemo

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/supacode-demo/internal/server"
)

type serveCommandOptions struct {
	address string
}

func newServeCommand(app *application) *cobra.Command {
	options := &serveCommandOptions{}

	command := &cobra.Command{
		Use:   serveCommandUse,
		Short: serveCommandShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServeCommand(ctx, app, *options)
		},
	}

	command.Flags().StringVar(&options.address, addressFlagName, "", addressFlagUsage)
	return command
}

func runServeCommand(ctx context.Context, app *application, options serveCommandOptions) error {
	if !app.logger.Core().Enabled(zapcore.DebugLevel) {
		gin.SetMode(gin.ReleaseMode)
	}

	address := app.rootConfiguration.Server.Address
	if trimmed := strings.TrimSpace(options.address); trimmed != "" {
		address = trimmed
	}

	demoServer := server.New(server.Options{
		Settings:       server.NewSettings(app.rootConfiguration.Extension.EdgeFunctionURL),
		Delay:          app.rootConfiguration.SimulatedDelay(),
		AllowedOrigins: app.rootConfiguration.Server.AllowedOrigins,
		Logger:         app.logger,
	})
	return demoServer.Run(ctx, address)
}
