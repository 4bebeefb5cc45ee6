package kprint

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config is the process-start configuration surface. Zero-valued fields
// keep the compiled-in defaults, so a partial config is always valid.
type Config struct {
	// Mode overrides the output mode compiled into the build.
	Mode Mode `yaml:"mode"`
	// Dump overrides the debug-echo value representation.
	Dump DumpStyle `yaml:"dump"`
	// Wrap, when positive, wraps the registered sink at the given display
	// width with [NewWrapWriter].
	Wrap int `yaml:"wrap"`
}

// Configure applies cfg to the package. It is meant to be called once at
// process start, after [SetSink]; the output mode is fixed from then on.
// Invalid modes and dump styles are rejected before anything is applied.
func Configure(cfg Config) error {
	mk := makeChannel
	switch cfg.Mode {
	case "":
	case Stream:
		mk = newStreamChannel
	case Buffered:
		mk = newBufferChannel
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedMode, cfg.Mode)
	}
	if cfg.Dump != "" {
		if _, err := ParseDumpStyle(string(cfg.Dump)); err != nil {
			return err
		}
	}
	makeChannel = mk
	if cfg.Dump != "" {
		dumpStyle = cfg.Dump
	}
	if cfg.Wrap > 0 && sink != nil {
		// Replace an existing decorator rather than stacking one on top,
		// so reconfiguring does not compound the width.
		base := sink
		if ww, ok := base.(*WrapWriter); ok {
			base = ww.w
		}
		sink = NewWrapWriter(base, cfg.Wrap)
	}
	return nil
}

// ParseConfig decodes a YAML configuration document, for hosts that carry
// a boot-time config blob:
//
//	mode: buffered
//	dump: yaml
//	wrap: 80
func ParseConfig(data []byte) (Config, error) {
	var raw struct {
		Mode string `yaml:"mode"`
		Dump string `yaml:"dump"`
		Wrap int    `yaml:"wrap"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, err
	}
	var cfg Config
	if raw.Mode != "" {
		m, err := ParseMode(raw.Mode)
		if err != nil {
			return Config{}, err
		}
		cfg.Mode = m
	}
	if raw.Dump != "" {
		d, err := ParseDumpStyle(raw.Dump)
		if err != nil {
			return Config{}, err
		}
		cfg.Dump = d
	}
	cfg.Wrap = raw.Wrap
	return cfg, nil
}
