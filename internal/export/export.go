// Package export writes snapshots for scripts instead of the terminal UI:
// one-shot documents and a snapshot-per-interval stream.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/ptop/internal/errors"
	"github.com/Dicklesworthstone/ptop/internal/model"
)

// Format is a snapshot encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json|yaml.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	}
	return FormatJSON, fmt.Errorf("unknown format %q", s)
}

// Source produces snapshots.
type Source interface {
	Sample(ctx context.Context) (model.Snapshot, error)
}

// encoder writes one document per call. JSON documents are single lines,
// YAML documents are separated by "---".
type encoder interface {
	Encode(v any) error
}

func newEncoder(w io.Writer, f Format) encoder {
	if f == FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		return enc
	}
	return json.NewEncoder(w)
}

// Write encodes a single snapshot.
func Write(w io.Writer, snap model.Snapshot, f Format) error {
	enc := newEncoder(w, f)
	if err := enc.Encode(snap); err != nil {
		return errors.Wrap(err, errors.ErrTerminal, "Failed to write snapshot")
	}
	if c, ok := enc.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Once samples twice, settle apart, so CPU percentages are deltas over a
// real interval, and writes the second snapshot.
func Once(ctx context.Context, w io.Writer, src Source, settle time.Duration, f Format) error {
	if _, err := src.Sample(ctx); err != nil {
		return errors.Wrap(err, errors.ErrSample, "Failed to sample system metrics")
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(settle):
	}
	snap, err := src.Sample(ctx)
	if err != nil {
		return errors.Wrap(err, errors.ErrSample, "Failed to sample system metrics")
	}
	return Write(w, snap, f)
}

// Stream writes one snapshot per interval until ctx is cancelled. Sampling
// failures are logged and skipped; write failures end the stream.
func Stream(ctx context.Context, w io.Writer, src Source, interval time.Duration, f Format, log *slog.Logger) error {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	enc := newEncoder(w, f)
	if c, ok := enc.(io.Closer); ok {
		defer c.Close()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		snap, err := src.Sample(ctx)
		switch {
		case err != nil:
			log.Error("sample failed", slog.String("error", err.Error()))
		default:
			if err := enc.Encode(snap); err != nil {
				return errors.Wrap(err, errors.ErrTerminal, "Failed to write snapshot")
			}
		}

		if ctx.Err() != nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
