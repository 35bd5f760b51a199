package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iammorganparry/relaypanel/internal/models"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSessionsSetAndList(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "relayd.db")
	noEnv := filepath.Join(t.TempDir(), "missing.env")

	_, err := runCmd(t, "sessions", "set", "1", "Sauna", "--db", dbPath, "--env-file", noEnv)
	require.NoError(t, err)

	out, err := runCmd(t, "sessions", "list", "--db", dbPath, "--env-file", noEnv)
	require.NoError(t, err)
	assert.Equal(t, "0\t-\n1\tSauna\n2\t-\n3\t-\n4\t-\n", out)

	_, err = runCmd(t, "sessions", "set", "1", "--db", dbPath, "--env-file", noEnv)
	require.NoError(t, err)
	out, err = runCmd(t, "sessions", "list", "--db", dbPath, "--env-file", noEnv)
	require.NoError(t, err)
	assert.Contains(t, out, "1\t-\n")
}

func TestSessionsSet_InvalidIndex(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "relayd.db")

	_, err := runCmd(t, "sessions", "set", "5", "X", "--db", dbPath, "--env-file", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidIndex)

	_, err = runCmd(t, "sessions", "set", "one", "X", "--db", dbPath, "--env-file", "")
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("RELAYD_TEST_NAME=garage\n"), 0o644))
	t.Setenv("RELAYD_TEST_NAME", "")
	os.Unsetenv("RELAYD_TEST_NAME")

	require.NoError(t, loadDotEnv(path))
	assert.Equal(t, "garage", os.Getenv("RELAYD_TEST_NAME"))

	assert.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
}
