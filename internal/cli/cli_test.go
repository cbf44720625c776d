package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vchandela/bftree/bftree"
)

func newTestCli(t *testing.T, input string) (*Cli, *bytes.Buffer) {
	t.Helper()
	tree, err := bftree.New[string, string](bftree.Options[string, string]{
		Compare: strings.Compare,
	})
	require.NoError(t, err)
	var out bytes.Buffer
	c := New(bufio.NewScanner(strings.NewReader(input)), &out, tree)
	return c, &out
}

func TestCliSetAndGet(t *testing.T) {
	c, out := newTestCli(t, "SET a 1\nGET a\n")
	c.Start()
	require.Contains(t, out.String(), "1")
}

func TestCliGetMissingKey(t *testing.T) {
	c, out := newTestCli(t, "GET missing\n")
	c.Start()
	require.Contains(t, out.String(), "Key not found.")
}

func TestCliDelThenGet(t *testing.T) {
	c, out := newTestCli(t, "SET a 1\nDEL a\nGET a\n")
	c.Start()
	require.Contains(t, out.String(), "Key not found.")
}

func TestCliUsageErrorOnBadArgs(t *testing.T) {
	c, out := newTestCli(t, "SET onlyonearg\n")
	c.Start()
	require.Contains(t, out.String(), "usage error")
}

func TestCliStats(t *testing.T) {
	c, out := newTestCli(t, "SET a 1\nSTATS\n")
	c.Start()
	require.Contains(t, out.String(), "height=1")
	require.Contains(t, out.String(), "put_count=1")
}

func TestCliVerifyReportsOK(t *testing.T) {
	c, out := newTestCli(t, "SET a 1\nSET b 2\nVERIFY\n")
	c.Start()
	require.Contains(t, out.String(), "OK")
}

func TestCliUnknownCommand(t *testing.T) {
	c, out := newTestCli(t, "BOGUS\n")
	c.Start()
	require.Contains(t, out.String(), "Unknown command")
}
