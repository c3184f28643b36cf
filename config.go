package blogpub

import "github.com/goliatone/go-blogpub/internal/runtimeconfig"

var (
	ErrAPIURLRequired         = runtimeconfig.ErrAPIURLRequired
	ErrAPIURLInvalid          = runtimeconfig.ErrAPIURLInvalid
	ErrAPIKeyRequired         = runtimeconfig.ErrAPIKeyRequired
	ErrAPITimeoutInvalid      = runtimeconfig.ErrAPITimeoutInvalid
	ErrListLimitInvalid       = runtimeconfig.ErrListLimitInvalid
	ErrWordsPerMinuteInvalid  = runtimeconfig.ErrWordsPerMinuteInvalid
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	APIConfig      = runtimeconfig.APIConfig
	MarkdownConfig = runtimeconfig.MarkdownConfig
	PublishConfig  = runtimeconfig.PublishConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// ConfigFromEnv loads the optional env file and builds a Config from the
// process environment.
func ConfigFromEnv(envFile string) (Config, error) {
	if err := runtimeconfig.LoadEnvFile(envFile); err != nil {
		return Config{}, err
	}
	return runtimeconfig.FromEnv(nil)
}
