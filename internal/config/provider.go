// SPDX-License-Identifier: MPL-2.0

package config

import "context"

type (
	// LoadOptions defines explicit configuration loading inputs.
	LoadOptions struct {
		// ConfigFilePath forces loading from a specific config file when set.
		ConfigFilePath string
		// ConfigDirPath overrides the config directory lookup when set.
		ConfigDirPath string
	}

	// Provider loads configuration from explicit options.
	Provider interface {
		Load(ctx context.Context, opts LoadOptions) (*Config, error)
	}

	// LoadResult is a loaded configuration together with the file it came from.
	// Path is empty when only defaults and environment variables were used.
	LoadResult struct {
		Config *Config
		Path   string
	}

	fileProvider struct{}

	staticProvider struct {
		cfg *Config
	}
)

// NewProvider creates a configuration provider that reads config.cue files.
func NewProvider() Provider {
	return &fileProvider{}
}

// NewStaticProvider returns a provider that always yields cfg.
// A nil cfg yields DefaultConfig().
func NewStaticProvider(cfg *Config) Provider {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &staticProvider{cfg: cfg}
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	res, err := LoadWithPath(ctx, opts)
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// Load returns a copy of the static configuration.
func (p *staticProvider) Load(_ context.Context, _ LoadOptions) (*Config, error) {
	cfg := *p.cfg
	cfg.NativeShell.Args = append([]string(nil), p.cfg.NativeShell.Args...)
	return &cfg, nil
}
