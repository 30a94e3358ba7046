package platform

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/aretw0/koconv/pkg/adapters/fs"
	"github.com/aretw0/koconv/pkg/core"
)

// EnvPrefix prefixes environment overrides, e.g. KOCONV_URL_MODE.
const EnvPrefix = "KOCONV"

// Settings is the layered configuration of the CLI.
type Settings struct {
	Policy  PolicySettings  `mapstructure:"policy"`
	URLMode string          `mapstructure:"url_mode"`
	Context ContextSettings `mapstructure:"context"`
	Specs   SpecSettings    `mapstructure:"specs"`
	Watch   WatchSettings   `mapstructure:"watch"`
}

// PolicySettings configures branch error handling.
type PolicySettings struct {
	Default  string            `mapstructure:"default"`
	Branches map[string]string `mapstructure:"branches"`
}

// ContextSettings holds the JSON-LD context URIs.
type ContextSettings struct {
	Object         string `mapstructure:"object"`
	Implementation string `mapstructure:"implementation"`
}

// SpecSettings holds the generated specification file names.
type SpecSettings struct {
	Service    string `mapstructure:"service"`
	Deployment string `mapstructure:"deployment"`
}

// WatchSettings configures --watch.
type WatchSettings struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// NewViper builds the settings source: defaults, then configFile (or a
// .koconv.yaml found upwards from the working directory), then KOCONV_*
// environment variables. Flags are bound by the caller.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault("policy.default", string(core.PolicyBestEffort))
	v.SetDefault("url_mode", string(core.URLTruncate))
	v.SetDefault("context.object", core.ObjectContext)
	v.SetDefault("context.implementation", core.ImplementationContext)
	v.SetDefault("specs.service", core.ServiceSpecFile)
	v.SetDefault("specs.deployment", core.DeploymentSpecFile)
	v.SetDefault("watch.debounce", fs.DefaultDebounce)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		found, err := FindConfig(cwd)
		if err != nil {
			return nil, err
		}
		configFile = found
	}
	if configFile == "" {
		return v, nil
	}

	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}
	return v, nil
}

// Decode unmarshals and validates the settings held by v.
func Decode(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if _, err := s.Options(); err != nil {
		return s, err
	}
	return s, nil
}
