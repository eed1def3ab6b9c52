package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reqmerge/internal/adapters"
	"reqmerge/internal/core"
	"reqmerge/tests/testutil"
)

// TestGoldenConsolidate runs a full consolidation against a fake hosting
// service and compares the output manifest to a committed golden file.
// If the golden file does not exist yet (first run), it is written so it
// can be committed.
//
// To update the golden file after an intentional change, delete
// testdata/golden/ and re-run the test.
func TestGoldenConsolidate(t *testing.T) {
	root := testutil.RepoRoot(t)
	goldenPath := filepath.Join(root, "tests", "integration", "testdata", "golden", "requirements.txt")

	server := testutil.FakeGitHub(t, map[string]string{
		"/repos/acme/app": `{"default_branch": "main"}`,
		"/acme/app/main/requirements.txt": "numpy>=1.21\n" +
			"pillow==10.3.0\n" +
			"git+https://github.com/acme/imaging@v1.2.0#egg=imaging\n" +
			"-e .\n" +
			"# tooling\n" +
			"requests>=2.28,<3\n",
		"/acme/imaging/v1.2.0/requirements.txt": "numpy>=1.23\npillow==10.3.0\n",
		"/acme/tools/v2.1.0/requirements.txt": "numpy<2.0\nrequests>=2.31\nPyYAML==6.0.1\n",
	})

	refs, err := adapters.NewRepoListFileAdapter().Load(filepath.Join(root, "fixtures", "repos-sample.json"))
	require.NoError(t, err)

	host := adapters.NewGitHubHostAdapter(adapters.HostConfig{
		APIBaseURL: server.URL,
		RawBaseURL: server.URL,
	})
	engine := core.Engine{Host: host}
	result, err := engine.Consolidate(t.Context(), refs)
	require.NoError(t, err)
	require.Empty(t, result.Report.Failures)
	require.Empty(t, result.Report.Conflicts)
	assert.Len(t, result.Report.Visited, 3)

	outPath := filepath.Join(t.TempDir(), "requirements.txt")
	require.NoError(t, adapters.NewManifestFileAdapter().Write(outPath, result.Requirements, result.Opaque))

	actual, err := os.ReadFile(outPath)
	require.NoError(t, err)

	if _, statErr := os.Stat(goldenPath); os.IsNotExist(statErr) {
		// Golden file doesn't exist yet -- write it.
		require.NoError(t, os.MkdirAll(filepath.Dir(goldenPath), 0o755))
		require.NoError(t, os.WriteFile(goldenPath, actual, 0o644))
		t.Logf("golden file written: %s (commit it)", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Equal(t, string(expected), string(actual),
		"golden mismatch -- delete testdata/golden/ and re-run to regenerate")
}

// TestConsolidateIdempotentOverHTTP re-runs the same traversal against
// fixed responses and expects byte-identical output.
func TestConsolidateIdempotentOverHTTP(t *testing.T) {
	root := testutil.RepoRoot(t)
	server := testutil.FakeGitHub(t, map[string]string{
		"/repos/acme/app":                     `{"default_branch": "main"}`,
		"/acme/app/main/requirements.txt":     "foo>=1.0\nbar==2.0\n",
		"/acme/tools/v2.1.0/requirements.txt": "foo<2.0\n",
	})

	refs, err := adapters.NewRepoListFileAdapter().Load(filepath.Join(root, "fixtures", "repos-sample.json"))
	require.NoError(t, err)

	host := adapters.NewGitHubHostAdapter(adapters.HostConfig{
		APIBaseURL: server.URL,
		RawBaseURL: server.URL,
	})

	write := func() string {
		result, err := core.Engine{Host: host}.Consolidate(t.Context(), refs)
		require.NoError(t, err)
		path := filepath.Join(t.TempDir(), "requirements.txt")
		require.NoError(t, adapters.NewManifestFileAdapter().Write(path, result.Requirements, result.Opaque))
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		return string(content)
	}

	first := write()
	second := write()
	assert.Equal(t, first, second)
	assert.Equal(t, "bar==2.0\nfoo<2.0,>=1.0\n", first)
}
