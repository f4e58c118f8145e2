package config

import (
	"time"
)

// Config carries runtime options for ptop.
type Config struct {
	Interval    time.Duration
	HistorySize int
	Sort        string
	Ascending   bool
	Filter      string
	Signal      string
	LogFile     string
	LogLevel    string
	NoColor     bool
	JSON        bool
	JSONStream  bool
	Format      string
}

func Default() Config {
	return Config{
		Interval:    time.Second,
		HistorySize: 100,
		Sort:        "cpu",
		Ascending:   false,
		Filter:      "",
		Signal:      "kill",
		LogFile:     "",
		LogLevel:    "info",
		NoColor:     false,
		JSON:        false,
		JSONStream:  false,
		Format:      "json",
	}
}

// ParseInterval reads a Go duration, or a bare number as seconds.
func ParseInterval(v string) (time.Duration, error) {
	parsed, err := time.ParseDuration(v)
	if err == nil {
		return parsed, nil
	}
	if parsed, err2 := time.ParseDuration(v + "s"); err2 == nil {
		return parsed, nil
	}
	return 0, err
}
