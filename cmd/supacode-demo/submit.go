package supacodedemo

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/supacode-demo/internal/client"
	"github.com/temirov/supacode-demo/internal/config"
	"github.com/temirov/supacode-demo/internal/fsops"
	"github.com/temirov/supacode-demo/internal/simulator"
)

const (
	readStdinErrorFormat       = "read source from stdin: %w"
	submitOperationErrorFormat = "submit %s: %w"
	setRemoteEndpointFormat    = "set remote endpoint: %w"
	writeResultsErrorFormat    = "write results: %w"
	remoteDelayConflictFormat  = "--%s cannot be combined with --%s: the remote server applies its own simulation delay"
)

type submitCommandOptions struct {
	endpoint   string
	delay      time.Duration
	timeout    time.Duration
	sourcePath string
	outputPath string
	writeMode  string
	remoteURL  string
}

// operationSubmitter resolves one operation to its result text.
type operationSubmitter interface {
	submit(ctx context.Context, operation simulator.Operation, sourceText string) (string, error)
}

type localSubmitter struct {
	simulator *simulator.Simulator
}

func (submitter localSubmitter) submit(ctx context.Context, operation simulator.Operation, sourceText string) (string, error) {
	response, err := submitter.simulator.Submit(ctx, simulator.Request{SourceText: sourceText, Operation: operation})
	return response.ResultText, err
}

type remoteSubmitter struct {
	client client.Client
}

func (submitter remoteSubmitter) submit(ctx context.Context, operation simulator.Operation, sourceText string) (string, error) {
	response, err := submitter.client.Submit(ctx, operation.String(), sourceText)
	return response.ResultText, err
}

func newSubmitCommand(app *application) *cobra.Command {
	options := &submitCommandOptions{}

	command := &cobra.Command{
		Use:   submitCommandUse,
		Short: submitCommandShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmitCommand(cmd, app, *options, args)
		},
	}

	command.Flags().StringVar(&options.endpoint, endpointFlagName, "", endpointFlagUsage)
	command.Flags().DurationVar(&options.delay, delayFlagName, 0, delayFlagUsage)
	command.Flags().DurationVar(&options.timeout, timeoutFlagName, 0, timeoutFlagUsage)
	command.Flags().StringVar(&options.sourcePath, sourceFlagName, "", sourceFlagUsage)
	command.Flags().StringVar(&options.outputPath, outputFlagName, "", outputFlagUsage)
	command.Flags().StringVar(&options.writeMode, modeFlagName, string(fsops.WriteModeWrite), modeFlagUsage)
	command.Flags().StringVar(&options.remoteURL, remoteFlagName, "", remoteFlagUsage)

	return command
}

func runSubmitCommand(command *cobra.Command, app *application, options submitCommandOptions, args []string) error {
	operations, parseErr := parseOperations(args)
	if parseErr != nil {
		return parseErr
	}
	remote := strings.TrimSpace(options.remoteURL) != ""
	if remote && command.Flags().Changed(delayFlagName) {
		return fmt.Errorf(remoteDelayConflictFormat, delayFlagName, remoteFlagName)
	}
	writeMode, modeErr := fsops.ParseWriteMode(options.writeMode)
	if modeErr != nil {
		return modeErr
	}

	endpointChanged := command.Flags().Changed(endpointFlagName)
	endpoint := app.rootConfiguration.Extension.EdgeFunctionURL
	if endpointChanged {
		endpoint = strings.TrimSpace(options.endpoint)
		if endpoint != "" {
			if validateErr := config.ValidateEdgeFunctionURL(endpoint); validateErr != nil {
				return validateErr
			}
		}
	}

	sourceText, sourceErr := resolveSourceText(command, app.store, options.sourcePath)
	if sourceErr != nil {
		return sourceErr
	}

	timeout := app.rootConfiguration.Timeout()
	if options.timeout > 0 {
		timeout = options.timeout
	}
	ctx, cancel := context.WithTimeout(command.Context(), timeout)
	defer cancel()

	var submitter operationSubmitter
	if remote {
		remoteClient := client.New(options.remoteURL)
		if endpointChanged {
			if _, setErr := remoteClient.SetEndpoint(ctx, endpoint); setErr != nil {
				return fmt.Errorf(setRemoteEndpointFormat, setErr)
			}
		}
		submitter = remoteSubmitter{client: remoteClient}
	} else {
		delay := app.rootConfiguration.SimulatedDelay()
		if command.Flags().Changed(delayFlagName) {
			delay = options.delay
		}
		submitter = localSubmitter{simulator: simulator.New(endpoint, simulator.WithDelay(delay), simulator.WithLogger(app.logger))}
	}

	results, submitErr := submitAll(ctx, submitter, operations, sourceText)
	if submitErr != nil {
		return submitErr
	}
	app.logger.Debug("operations resolved", zap.Int("count", len(results)), zap.Bool("remote", remote))

	output := formatResults(operations, results)
	if options.outputPath != "" {
		if writeErr := app.store.WriteResult(options.outputPath, output, writeMode); writeErr != nil {
			return fmt.Errorf(writeResultsErrorFormat, writeErr)
		}
		_, printErr := fmt.Fprintf(command.OutOrStdout(), wroteResultsFormat, len(results), options.outputPath)
		return printErr
	}
	_, printErr := io.WriteString(command.OutOrStdout(), output)
	return printErr
}

func parseOperations(args []string) ([]simulator.Operation, error) {
	if len(args) == 0 {
		args = []string{defaultOperationName}
	}
	operations := make([]simulator.Operation, 0, len(args))
	for _, name := range args {
		operation, err := simulator.ParseOperation(name)
		if err != nil {
			return nil, err
		}
		operations = append(operations, operation)
	}
	return operations, nil
}

func resolveSourceText(command *cobra.Command, store fsops.Store, sourcePath string) (string, error) {
	switch strings.TrimSpace(sourcePath) {
	case "":
		return simulator.SampleSource, nil
	case stdinSourceMarker:
		content, readErr := io.ReadAll(command.InOrStdin())
		if readErr != nil {
			return "", fmt.Errorf(readStdinErrorFormat, readErr)
		}
		return string(content), nil
	default:
		return store.ReadSource(sourcePath)
	}
}

// submitAll runs every operation concurrently and returns results in argument order.
func submitAll(ctx context.Context, submitter operationSubmitter, operations []simulator.Operation, sourceText string) ([]string, error) {
	results := make([]string, len(operations))
	group, groupContext := errgroup.WithContext(ctx)
	for index, operation := range operations {
		group.Go(func() error {
			resultText, err := submitter.submit(groupContext, operation, sourceText)
			if err != nil {
				return fmt.Errorf(submitOperationErrorFormat, operation, err)
			}
			results[index] = resultText
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func formatResults(operations []simulator.Operation, results []string) string {
	if len(results) == 1 {
		return ensureNewline(results[0])
	}
	var builder strings.Builder
	for index, resultText := range results {
		if index > 0 {
			builder.WriteString("\n")
		}
		fmt.Fprintf(&builder, resultHeaderFormat, operations[index].Label())
		builder.WriteString(ensureNewline(resultText))
	}
	return builder.String()
}

func ensureNewline(text string) string {
	if strings.HasSuffix(text, "\n") {
		return text
	}
	return text + "\n"
}
