package supacodedemo

const (
	applicationName                  = "supacode-demo"
	rootCommandShort                 = "Simulate the SupaCode AI assistant operations"
	defaultConfigPath                = "./config.yaml"
	configFlagName                   = "config"
	configFlagUsage                  = "Path to config.yaml"
	logLevelFlagName                 = "log-level"
	logLevelFlagUsage                = "Override common.logging.level (debug, info, warn, error)"
	operationsCommandUse             = "operations"
	operationsCommandShort           = "List the simulated assistant operations"
	submitCommandUse                 = "submit [OPERATION...]"
	submitCommandShort               = "Submit source text to one or more simulated operations"
	defaultOperationName             = "refactor"
	endpointFlagName                 = "endpoint"
	endpointFlagUsage                = "Edge function URL (overrides extension.edge_function_url)"
	delayFlagName                    = "delay"
	delayFlagUsage                   = "Simulated processing delay (e.g. 250ms; overrides simulation.delay_milliseconds; not allowed with --remote)"
	timeoutFlagName                  = "timeout"
	timeoutFlagUsage                 = "Abandon pending calls after this long (0 = use defaults)"
	sourceFlagName                   = "source"
	sourceFlagUsage                  = "File to read source text from (- for stdin; default sample snippet)"
	outputFlagName                   = "output"
	outputFlagUsage                  = "Write results to this file instead of stdout"
	modeFlagName                     = "mode"
	modeFlagUsage                    = "Output write mode: write or append"
	remoteFlagName                   = "remote"
	remoteFlagUsage                  = "Submit through a running demo server at this base URL"
	stdinSourceMarker                = "-"
	serveCommandUse                  = "serve"
	serveCommandShort                = "Serve the demo panel HTTP API"
	addressFlagName                  = "address"
	addressFlagUsage                 = "Listen address (overrides server.address)"
	listingsCommandUse               = "listings [NAME]"
	listingsCommandShort             = "List or render the documentation code listings"
	rawFlagName                      = "raw"
	rawFlagUsage                     = "Print the listing source without markdown rendering"
	styleFlagName                    = "style"
	styleFlagUsage                   = "Glamour style for rendering (auto, dark, light, notty)"
	widthFlagName                    = "width"
	widthFlagUsage                   = "Word wrap width for rendered listings"
	defaultRenderWidth               = 100
	resultHeaderFormat               = "== %s ==\n"
	wroteResultsFormat               = "wrote %d result(s) to %s\n"
	configurationLoaderErrorFormat   = "initialize configuration loader: %w"
	configurationSourceErrorFormat   = "resolve configuration source: %w"
	rootConfigurationLoadErrorFormat = "load root configuration %s: %w"
	environmentOverrideErrorFormat   = "apply environment overrides: %w"
	loggerInitializationErrorFormat  = "initialize logger: %w"
	writeOperationListingErrorFormat = "write operation listing: %w"
	writeListingIndexErrorFormat     = "write listing index: %w"
	operationListingLineFormat       = "%s\t%s\n"
	listingIndexLineFormat           = "%s\t(%s) %s\n"
)
