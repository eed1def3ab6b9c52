package adapters

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"reqmerge/internal/types"
)

func TestReportWriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	report := types.TraversalReport{
		Visited: []types.VisitedRepository{
			{URL: "https://github.com/a/b", Ref: "main", Origin: types.RefOriginInput, Requirements: 3},
		},
		Failures: []types.FetchFailure{
			{URL: "https://github.com/a/missing", Ref: "main", Reason: "status=404"},
		},
		Conflicts: []types.SpecifierConflict{
			{Name: "foo", Specifier: "==1.0,==2.0", Detail: "pin ==1.0 is excluded by ==1.0,==2.0"},
		},
		Packages: 2,
		Opaque:   1,
	}

	adapter := NewReportFileAdapter()
	require.NoError(t, adapter.Write(path, report))

	loaded, err := adapter.Read(path)
	require.NoError(t, err)
	if diff := cmp.Diff(report, loaded); diff != "" {
		t.Fatalf("report changed across write/read (-want +got):\n%s", diff)
	}
}

func TestReportWriteRequiresPath(t *testing.T) {
	require.Error(t, NewReportFileAdapter().Write("", types.TraversalReport{}))
}

func TestReportReadMissingFile(t *testing.T) {
	_, err := NewReportFileAdapter().Read(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
