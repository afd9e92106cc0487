package config

// Overrides carries values set on the command line. Zero values mean the
// flag was not given.
type Overrides struct {
	Dataset     string
	Addr        string
	MetricsAddr string
	Debug       bool
	LogFormat   string
	Heading     string
}

// Merge combines file/env config with CLI-provided overrides.
// CLI values take precedence; zero-value CLI fields fall through to cfg.
func Merge(cfg *Config, cli Overrides) *Config {
	result := *cfg

	if cli.Dataset != "" {
		result.Dataset = cli.Dataset
	}
	if cli.Addr != "" {
		result.Server.Addr = cli.Addr
	}
	if cli.MetricsAddr != "" {
		result.Server.MetricsAddr = cli.MetricsAddr
	}

	// Debug: CLI wins if true, otherwise config.
	if cli.Debug {
		result.Server.Debug = true
	}
	if cli.LogFormat != "" {
		result.LogFormat = cli.LogFormat
	}
	if cli.Heading != "" {
		result.Heading = cli.Heading
	}

	return &result
}

// Resolve loads the config file (path, or the working directory when path is
// empty), applies environment overrides, then CLI overrides.
func Resolve(dir, path string, cli Overrides) (*Config, error) {
	var cfg *Config
	var err error
	if path != "" {
		cfg, err = LoadFile(path)
	} else {
		cfg, err = Load(dir)
	}
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return Merge(cfg, cli), nil
}
