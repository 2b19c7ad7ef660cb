// internal/record/id_test.go
package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expectErr bool
		expected  ID
	}{
		{name: "simple id", raw: "#1", expected: 1},
		{name: "large id", raw: "#104532", expected: 104532},
		{name: "error - missing hash", raw: "12", expectErr: true},
		{name: "error - hash only", raw: "#", expectErr: true},
		{name: "error - letters", raw: "#1a", expectErr: true},
		{name: "error - zero is reserved for the root", raw: "#0", expectErr: true},
		{name: "error - empty string", raw: "", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := ParseID(tc.raw)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, id)
			assert.Equal(t, tc.raw, id.String())
		})
	}
}

func TestRootIsNotARecord(t *testing.T) {
	assert.True(t, Root.IsRoot())
	assert.False(t, ID(1).IsRoot())
	assert.Equal(t, "#0", Root.String())
}
