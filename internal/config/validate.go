package config

import (
	"fmt"
	"strings"

	"github.com/Dicklesworthstone/ptop/internal/errors"
	"github.com/Dicklesworthstone/ptop/internal/proctable"
	"github.com/Dicklesworthstone/ptop/internal/sampler"
)

// Validate checks the config and returns the first problem as a CONFIG error.
func (c Config) Validate() error {
	if c.Interval <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Interval must be positive, got %s", c.Interval),
			"Use a duration like 500ms or 2s")
	}
	if c.HistorySize <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("History size must be positive, got %d", c.HistorySize),
			"Use --history with a value like 100")
	}
	if _, err := proctable.ParseSortKey(c.Sort); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Unknown sort key: "+c.Sort,
			"Use one of pid, name, cpu, mem, runtime, status")
	}
	if _, err := sampler.ParseSignal(c.Signal); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Unknown signal: "+c.Signal,
			"Use kill or term")
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return errors.New(errors.ErrConfig,
			"Unknown log level: "+c.LogLevel,
			"Use one of debug, info, warn, error")
	}
	switch strings.ToLower(c.Format) {
	case "json", "yaml":
	default:
		return errors.New(errors.ErrConfig,
			"Unknown output format: "+c.Format,
			"Use json or yaml")
	}
	if c.JSON && c.JSONStream {
		return errors.New(errors.ErrConfig,
			"--json and --json-stream are mutually exclusive",
			"Pick one output mode")
	}
	return nil
}

// SortSpec is the initial process ordering.
func (c Config) SortSpec() proctable.SortSpec {
	key, err := proctable.ParseSortKey(c.Sort)
	if err != nil {
		return proctable.DefaultSort()
	}
	return proctable.SortSpec{Key: key, Ascending: c.Ascending}
}

// TermSignal is the signal sent by the terminate action.
func (c Config) TermSignal() sampler.Signal {
	sig, _ := sampler.ParseSignal(c.Signal)
	return sig
}
