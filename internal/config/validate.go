package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/davetashner/launchdash/internal/dataset"
	"github.com/davetashner/launchdash/internal/output"
)

// Validate checks all fields in the config and returns all errors at once.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Dataset == "" {
		errs = append(errs, "dataset: required (set in config, LAUNCHDASH_DATASET or --dataset)")
	} else if strings.HasPrefix(cfg.Dataset, "s3://") {
		if _, _, ok := dataset.ParseS3URI(cfg.Dataset); !ok {
			errs = append(errs, fmt.Sprintf("dataset: invalid S3 URI %q (want s3://bucket/key)", cfg.Dataset))
		}
	}

	if cfg.Delimiter != "" {
		r, size := utf8.DecodeRuneInString(cfg.Delimiter)
		switch {
		case size != len(cfg.Delimiter):
			errs = append(errs, fmt.Sprintf("delimiter: must be a single character, got %q", cfg.Delimiter))
		case r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError:
			errs = append(errs, fmt.Sprintf("delimiter: invalid character %q", cfg.Delimiter))
		}
	}

	cols := map[string]string{}
	for _, c := range []struct{ key, name string }{
		{"columns.site", cfg.Columns.Site},
		{"columns.payload_mass", cfg.Columns.PayloadMass},
		{"columns.class", cfg.Columns.Class},
		{"columns.booster_category", cfg.Columns.BoosterCategory},
	} {
		if c.name == "" {
			continue
		}
		if other, dup := cols[c.name]; dup {
			errs = append(errs, fmt.Sprintf("%s: column %q already mapped by %s", c.key, c.name, other))
			continue
		}
		cols[c.name] = c.key
	}

	if cfg.S3.Endpoint != "" {
		if u, err := url.Parse(cfg.S3.Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Sprintf("s3.endpoint: must be an absolute URL, got %q", cfg.S3.Endpoint))
		}
	}

	if err := checkAddr(cfg.Server.Addr); err != nil {
		errs = append(errs, fmt.Sprintf("server.addr: %v", err))
	}
	if cfg.Server.MetricsAddr != "" {
		if err := checkAddr(cfg.Server.MetricsAddr); err != nil {
			errs = append(errs, fmt.Sprintf("server.metrics_addr: %v", err))
		} else if cfg.Server.MetricsAddr == cfg.Server.Addr {
			errs = append(errs, "server.metrics_addr: must differ from server.addr")
		}
	}

	if cfg.OutputFormat != "" {
		if _, err := output.GetFormatter(cfg.OutputFormat); err != nil {
			errs = append(errs, fmt.Sprintf("output_format: %v", err))
		}
	}

	switch cfg.LogFormat {
	case "", "text", "json":
		// valid
	default:
		errs = append(errs, fmt.Sprintf("log_format: invalid value %q (must be text or json)", cfg.LogFormat))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func checkAddr(addr string) error {
	if addr == "" {
		return fmt.Errorf("required")
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("invalid listen address %q: %w", addr, err)
	}
	return nil
}
