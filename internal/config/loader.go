package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Dicklesworthstone/ptop/internal/errors"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. PTOP_INTERVAL=2s.
	EnvPrefix = "PTOP"
	// ConfigDir is the directory under the user config dir holding the file.
	ConfigDir = "ptop"
	// ConfigFile is the config file name.
	ConfigFile = "config.yaml"
)

// Keys double as flag names and YAML keys. Environment variables use the
// upper-cased key with dashes turned into underscores.
const (
	KeyInterval   = "interval"
	KeyHistory    = "history"
	KeySort       = "sort"
	KeyAscending  = "ascending"
	KeyFilter     = "filter"
	KeySignal     = "signal"
	KeyLogFile    = "log-file"
	KeyLogLevel   = "log-level"
	KeyNoColor    = "no-color"
	KeyJSON       = "json"
	KeyJSONStream = "json-stream"
	KeyFormat     = "format"
)

// Load resolves the configuration from, lowest to highest precedence:
// defaults, the config file, PTOP_ environment variables and flags that
// were set explicitly. An empty path falls back to the default file when
// it exists. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, errors.Wrap(err, errors.ErrConfig, "Failed to bind flags")
		}
	}

	file, err := Find(path)
	if err != nil {
		return Config{}, err
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check the file exists and is valid YAML")
		}
	}

	return parseConfig(v)
}

// Find returns the explicit path if it exists, else the default config
// file if present, else "".
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Specified config file not found: "+explicit,
				"Check the path is correct")
		}
		return explicit, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", nil
	}
	p := filepath.Join(dir, ConfigDir, ConfigFile)
	if _, err := os.Stat(p); err == nil {
		return p, nil
	}
	return "", nil
}

// RegisterFlags declares one flag per key on fs, with the defaults as
// flag defaults.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String(KeyInterval, d.Interval.String(), "refresh interval (duration or seconds)")
	fs.Int(KeyHistory, d.HistorySize, "points kept per metric graph")
	fs.String(KeySort, d.Sort, "initial sort column: pid|name|cpu|mem|runtime|status")
	fs.Bool(KeyAscending, d.Ascending, "sort ascending instead of descending")
	fs.String(KeyFilter, d.Filter, "initial process name filter")
	fs.String(KeySignal, d.Signal, "terminate signal: kill|term")
	fs.String(KeyLogFile, d.LogFile, "write JSON logs to this file")
	fs.String(KeyLogLevel, d.LogLevel, "log level: debug|info|warn|error")
	fs.Bool(KeyNoColor, d.NoColor, "disable colors")
	fs.Bool(KeyJSON, d.JSON, "print one snapshot and exit")
	fs.Bool(KeyJSONStream, d.JSONStream, "stream snapshots as NDJSON until interrupted")
	fs.String(KeyFormat, d.Format, "snapshot encoding for --json and --json-stream: json|yaml")
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyInterval, d.Interval.String())
	v.SetDefault(KeyHistory, d.HistorySize)
	v.SetDefault(KeySort, d.Sort)
	v.SetDefault(KeyAscending, d.Ascending)
	v.SetDefault(KeyFilter, d.Filter)
	v.SetDefault(KeySignal, d.Signal)
	v.SetDefault(KeyLogFile, d.LogFile)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyNoColor, d.NoColor)
	v.SetDefault(KeyJSON, d.JSON)
	v.SetDefault(KeyJSONStream, d.JSONStream)
	v.SetDefault(KeyFormat, d.Format)
}

func parseConfig(v *viper.Viper) (Config, error) {
	interval, err := ParseInterval(v.GetString(KeyInterval))
	if err != nil {
		return Config{}, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid interval: "+v.GetString(KeyInterval),
			"Use a duration like 500ms or 2s, or a number of seconds")
	}
	cfg := Config{
		Interval:    interval,
		HistorySize: v.GetInt(KeyHistory),
		Sort:        v.GetString(KeySort),
		Ascending:   v.GetBool(KeyAscending),
		Filter:      v.GetString(KeyFilter),
		Signal:      v.GetString(KeySignal),
		LogFile:     v.GetString(KeyLogFile),
		LogLevel:    v.GetString(KeyLogLevel),
		NoColor:     v.GetBool(KeyNoColor),
		JSON:        v.GetBool(KeyJSON),
		JSONStream:  v.GetBool(KeyJSONStream),
		Format:      v.GetString(KeyFormat),
	}
	return cfg, cfg.Validate()
}
