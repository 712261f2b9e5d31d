package command

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aarondwi/fairqueue/config"
	"github.com/aarondwi/fairqueue/logging"
)

func TestShellCommandFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.txt")
	require.NoError(t, os.WriteFile(path, []byte("add 111 a1\naddmany 222 b1, b2\nlist\n"), 0o600))

	reg := prometheus.NewRegistry()
	var out bytes.Buffer
	cfg := config.Default()
	c := ShellCommand{
		Logger:   logging.NewTestLogger(),
		Registry: reg,
		In:       strings.NewReader("add 999 ignored\n"),
		Out:      &out,
	}.Command(context.Background(), &cfg)
	c.SetArgs([]string{"--file", path})

	require.NoError(t, c.Execute())

	assert.Equal(t, strings.Join([]string{
		"Queued 'a1' for <@111> at position 1.",
		"Queued 2 items for <@222> starting at position 2.",
		"1. <@111> — a1",
		"2. <@222> — b1",
		"3. <@222> — b2",
	}, "\n")+"\n", out.String())

	count, err := testutil.GatherAndCount(reg, "fairqueue_starts_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestShellCommandInvalidConfig(t *testing.T) {
	cfg := config.Config{SizeLimit: 0}
	c := ShellCommand{
		Logger:   logging.NewTestLogger(),
		Registry: prometheus.NewRegistry(),
		In:       strings.NewReader(""),
		Out:      &bytes.Buffer{},
	}.Command(context.Background(), &cfg)
	c.SetArgs([]string{})
	c.SilenceUsage = true
	c.SilenceErrors = true

	assert.Error(t, c.Execute())
}
