package policies

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reqmerge/internal/types"
)

func TestNewConflictPolicy(t *testing.T) {
	tests := []struct {
		action   string
		expected string
		wantErr  bool
	}{
		{"", ConflictActionWarn, false},
		{"warn", ConflictActionWarn, false},
		{"FAIL", ConflictActionFail, false},
		{" fail ", ConflictActionFail, false},
		{"explode", "", true},
	}

	for _, tt := range tests {
		policy, err := NewConflictPolicy(tt.action)
		if tt.wantErr {
			require.Error(t, err, tt.action)
			assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
			continue
		}
		require.NoError(t, err, tt.action)
		assert.Equal(t, tt.expected, policy.Action)
	}
}

func TestConflictPolicyWarnKeepsRunAlive(t *testing.T) {
	policy, err := NewConflictPolicy(ConflictActionWarn)
	require.NoError(t, err)
	assert.NoError(t, policy.Apply([]types.SpecifierConflict{
		{Name: "foo", Specifier: "==1.0,==2.0", Detail: "pin ==1.0 is excluded by ==1.0,==2.0"},
	}))
}

func TestConflictPolicyFailAborts(t *testing.T) {
	policy, err := NewConflictPolicy(ConflictActionFail)
	require.NoError(t, err)

	err = policy.Apply([]types.SpecifierConflict{
		{Name: "foo", Specifier: "==1.0,==2.0", Detail: "pin ==1.0 is excluded by ==1.0,==2.0"},
	})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
}

func TestConflictPolicyNoConflicts(t *testing.T) {
	policy, err := NewConflictPolicy(ConflictActionFail)
	require.NoError(t, err)
	assert.NoError(t, policy.Apply(nil))
}
