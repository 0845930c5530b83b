package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silicontrust/element-command/pkg/cli"
	"github.com/silicontrust/element-command/pkg/connector"
	"github.com/silicontrust/element-command/pkg/connector/simulated"
	"github.com/silicontrust/element-command/pkg/element"
)

func newTestShell(t *testing.T) (*element.Session, *cli.Config) {
	t.Helper()
	session, err := element.Open(simulated.New().Connect())
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })
	config, err := cli.NewConfig(cli.FlagAll)
	require.NoError(t, err)
	return session, config
}

func TestGetActions(t *testing.T) {
	mask, err := GetActions("notify")
	require.NoError(t, err)
	assert.Equal(t, element.ActionNotify, mask)

	mask, err = GetActions("Notify, Self-Destruct")
	require.NoError(t, err)
	assert.Equal(t, element.ActionNotify|element.ActionSelfDestruct, mask)

	mask, err = GetActions("none")
	require.NoError(t, err)
	assert.Zero(t, mask)

	_, err = GetActions("detonate")
	assert.Error(t, err)
}

func TestGetAxis(t *testing.T) {
	for name, want := range map[string]connector.Axis{
		"x": connector.AxisX, "Y": connector.AxisY, "z": connector.AxisZ, "ALL": connector.AxisAll,
	} {
		axis, err := getAxis(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, axis)
	}
	_, err := getAxis("w")
	assert.Error(t, err)
}

func TestCommandTable(t *testing.T) {
	for name, info := range commands {
		assert.NotEmpty(t, info.help, "command %s has no help text", name)
		assert.NotNil(t, info.handler, "command %s has no handler", name)
	}
}

func TestExecuteRejectsBadInvocations(t *testing.T) {
	session, config := newTestShell(t)

	err := execute(session, config, []string{"bogus"}, time.Second)
	assert.ErrorIs(t, err, ErrUnknownCommand)

	err = execute(session, config, []string{"lock"}, time.Second)
	assert.ErrorIs(t, err, ErrCommandLineArgs)

	err = execute(session, config, []string{"lock", "a", "b", "c"}, time.Second)
	assert.ErrorIs(t, err, ErrCommandLineArgs)

	err = execute(session, config, nil, time.Second)
	assert.Error(t, err)
}

func TestLockUnlockCommands(t *testing.T) {
	session, config := newTestShell(t)
	dir := t.TempDir()
	plainPath := filepath.Join(dir, "plain")
	lockedPath := filepath.Join(dir, "locked")
	outPath := filepath.Join(dir, "out")
	require.NoError(t, os.WriteFile(plainPath, []byte("shell payload"), 0o600))

	require.NoError(t, execute(session, config, []string{"lock", plainPath, lockedPath}, time.Second))
	require.NoError(t, execute(session, config, []string{"unlock", lockedPath, outPath}, time.Second))

	recovered, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("shell payload"), recovered)

	// A key class mismatch surfaces as a command error, not a panic or partial write.
	require.NoError(t, config.KeyClass.Set("shared"))
	err = execute(session, config, []string{"unlock", lockedPath, outPath}, time.Second)
	assert.Error(t, err)
}

func TestRandomCommand(t *testing.T) {
	session, config := newTestShell(t)
	path := filepath.Join(t.TempDir(), "entropy")

	require.NoError(t, execute(session, config, []string{"random", "128", path}, time.Second))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, data, 128)

	err = execute(session, config, []string{"random", "many"}, time.Second)
	assert.ErrorIs(t, err, ErrCommandLineArgs)
}
