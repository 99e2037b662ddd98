package cli_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fairmatroid/experiment"
	"github.com/katalvlaran/fairmatroid/internal/cli"
)

var skewed = filepath.Join("..", "..", "config", "testdata", "skewed.yaml")

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := cli.NewRootCommand(context.Background(), "test", &out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRun(t *testing.T) {
	out, err := execute(t, "run", "--config", skewed, "--repeats", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7, out)
	require.True(t, strings.HasPrefix(lines[0], "LABEL"))
	require.Contains(t, out, "Two pass algorithm (greedy)")
	for _, l := range lines[1:] {
		require.True(t, strings.HasPrefix(l, "skewed-k3"), l)
	}
}

func TestRun_Solutions(t *testing.T) {
	out, err := execute(t, "run", "-c", skewed, "--solutions", "--seed", "3")
	require.NoError(t, err)
	require.Contains(t, out, "#0\t")
}

func TestCheck(t *testing.T) {
	out, err := execute(t, "check", "--config", skewed)
	require.NoError(t, err)
	require.Equal(t, "skewed-k3: feasible=true\n", out)
}

func TestCheck_Infeasible(t *testing.T) {
	doc := `
name: tight
oracle: {kind: cardinality, universe: [0, 1]}
matroid: {kind: uniform, rank: 1}
fairness: {colors: {0: 0, 1: 1}, bounds: [{lower: 1, upper: 1}, {lower: 1, upper: 1}]}
algorithms: [{kind: random}]
`
	path := filepath.Join(t.TempDir(), "tight.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	out, err := execute(t, "check", "--config", path)
	require.ErrorIs(t, err, experiment.ErrInfeasibleInstance)
	require.Equal(t, "tight: feasible=false\n", out)
}

func TestConfigRequired(t *testing.T) {
	_, err := execute(t, "run")
	require.Error(t, err)
}
