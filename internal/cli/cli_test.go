package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dicklesworthstone/ptop/internal/app"
	"github.com/Dicklesworthstone/ptop/internal/errors"
	"github.com/Dicklesworthstone/ptop/internal/model"
	"github.com/Dicklesworthstone/ptop/internal/proctable"
	"github.com/Dicklesworthstone/ptop/internal/sampler"
)

type fakeSource struct{}

func (fakeSource) Sample(context.Context) (model.Snapshot, error) {
	return model.Snapshot{
		Host:      model.Host{Name: "box"},
		Processes: []model.Process{{PID: 42, Name: "demo"}},
	}, nil
}

func (fakeSource) Terminate(context.Context, int32) error { return nil }

// setup isolates config lookup and swaps the OS seams for the test.
func setup(t *testing.T, tty bool) *sampler.Signal {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)

	var gotSig sampler.Signal
	prevSource, prevTTY, prevTUI := newSource, isTerminal, runTUI
	newSource = func(sig sampler.Signal) app.MetricsSource {
		gotSig = sig
		return fakeSource{}
	}
	isTerminal = func() bool { return tty }
	t.Cleanup(func() { newSource, isTerminal, runTUI = prevSource, prevTTY, prevTUI })
	return &gotSig
}

func execute(args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	SetVersionInfo("1.2.3", "abc", "today")
	t.Cleanup(func() { SetVersionInfo("dev", "none", "unknown") })

	out, err := execute("version")
	require.NoError(t, err)
	assert.Contains(t, out, "ptop v1.2.3")
	assert.Contains(t, out, "commit: abc")

	out, err = execute("version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3\n", out)
}

func TestFormatVersion(t *testing.T) {
	assert.Equal(t, "dev", formatVersion("dev"))
	assert.Equal(t, "v1.0.0", formatVersion("1.0.0"))
	assert.Equal(t, "v1.0.0", formatVersion("v1.0.0"))
}

func TestJSONOneShot(t *testing.T) {
	sig := setup(t, false)
	out, err := execute("--json", "--interval", "1ms", "--signal", "term")
	require.NoError(t, err)

	var snap model.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, "box", snap.Host.Name)
	assert.Equal(t, sampler.SignalTerm, *sig)
}

func TestYAMLOneShot(t *testing.T) {
	setup(t, false)
	out, err := execute("--json", "--format", "yaml", "--interval", "1ms")
	require.NoError(t, err)
	assert.Contains(t, out, "host_name: box")
}

func TestInvalidConfigFails(t *testing.T) {
	setup(t, true)
	_, err := execute("--sort", "bogus")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestNotATerminal(t *testing.T) {
	setup(t, false)
	_, err := execute()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrTerminal))
}

func TestTUIReceivesConfiguredApp(t *testing.T) {
	setup(t, true)
	var (
		gotApp      *app.App
		gotInterval time.Duration
	)
	runTUI = func(_ context.Context, a *app.App, interval time.Duration) error {
		gotApp, gotInterval = a, interval
		return nil
	}

	_, err := execute("--sort", "name", "--ascending", "--filter", "dem", "--interval", "2")
	require.NoError(t, err)
	require.NotNil(t, gotApp)
	assert.Equal(t, 2*time.Second, gotInterval)
	assert.Equal(t, proctable.SortSpec{Key: proctable.SortByName, Ascending: true}, gotApp.Sort())
	assert.Equal(t, "dem", gotApp.Filter())
}
