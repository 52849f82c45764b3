package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnifiedDiff(t *testing.T) {
	before := []string{".method public foo()V", "return-void", ".end method"}
	after := []string{".method public foo()V", "const/4 v0, 0x1", "return v0", ".end method"}

	diff, err := UnifiedDiff("smali/Foo.smali", before, after, 3)

	require.NoError(t, err)
	assert.Equal(t, "--- a/smali/Foo.smali\n"+
		"+++ b/smali/Foo.smali\n"+
		"@@ -1,3 +1,4 @@\n"+
		" .method public foo()V\n"+
		"-return-void\n"+
		"+const/4 v0, 0x1\n"+
		"+return v0\n"+
		" .end method\n", diff)
}

func TestUnifiedDiff_NoChanges(t *testing.T) {
	lines := []string{"a", "b"}

	diff, err := UnifiedDiff("Foo.smali", lines, lines, 3)

	require.NoError(t, err)
	assert.Empty(t, diff)
}

func TestDiffStat(t *testing.T) {
	tests := []struct {
		name    string
		before  []string
		after   []string
		added   int
		removed int
	}{
		{"replacement", []string{"a", "b", "c"}, []string{"a", "x", "y", "c"}, 2, 1},
		{"pure insert", []string{"a"}, []string{"a", "b"}, 1, 0},
		{"pure delete", []string{"a", "b"}, []string{"a"}, 0, 1},
		{"new file", []string{}, []string{"a", "b"}, 2, 0},
		{"unchanged", []string{"a"}, []string{"a"}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			added, removed := DiffStat(tt.before, tt.after)
			assert.Equal(t, tt.added, added)
			assert.Equal(t, tt.removed, removed)
		})
	}
}
