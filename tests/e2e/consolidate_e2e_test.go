package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"reqmerge/tests/testutil"
)

func TestConsolidateCommandE2E(t *testing.T) {
	root := testutil.RepoRoot(t)
	outDir := t.TempDir()

	server := testutil.FakeGitHub(t, map[string]string{
		"/repos/acme/app":                     `{"default_branch": "main"}`,
		"/acme/app/main/requirements.txt":     "numpy>=1.21\nrequests<3\n",
		"/acme/tools/v2.1.0/requirements.txt": "numpy<2.0\nPyYAML==6.0.1\n",
	})

	inputPath := filepath.Join(outDir, "repos.json")
	input := `[{"repo": "https://github.com/acme/app"}, {"repo": "https://github.com/acme/tools", "commit": "v2.1.0"}]`
	require.NoError(t, os.WriteFile(inputPath, []byte(input), 0o644))

	cmd := exec.Command("go", "run", "./cmd/reqmerge", "consolidate", inputPath,
		"--api-url", server.URL,
		"--raw-url", server.URL,
		"--output", filepath.Join(outDir, "requirements.txt"),
		"--report", filepath.Join(outDir, "traversal.report"),
		"--fetch-delay-ms", "1",
	)
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "GO111MODULE=on")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))

	require.FileExists(t, filepath.Join(outDir, "requirements.txt"))
	require.FileExists(t, filepath.Join(outDir, "traversal.report"))

	manifest, err := os.ReadFile(filepath.Join(outDir, "requirements.txt"))
	require.NoError(t, err)
	require.Equal(t, "numpy<2.0,>=1.21\npyyaml==6.0.1\nrequests<3\n", string(manifest))
}

func TestConsolidateCommandE2EBadInput(t *testing.T) {
	root := testutil.RepoRoot(t)

	inputPath := filepath.Join(t.TempDir(), "repos.json")
	require.NoError(t, os.WriteFile(inputPath, []byte(`{"repo": "not-a-list"}`), 0o644))

	cmd := exec.Command("go", "run", "./cmd/reqmerge", "consolidate", inputPath,
		"--output", filepath.Join(t.TempDir(), "requirements.txt"),
	)
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "GO111MODULE=on")
	out, err := cmd.CombinedOutput()
	require.Error(t, err, string(out))

	exitErr, ok := err.(*exec.ExitError)
	require.True(t, ok, string(out))
	require.Equal(t, 1, exitErr.ExitCode())
}
