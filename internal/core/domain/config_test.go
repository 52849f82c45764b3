package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateDefaultConfigReturnsConfig(t *testing.T) {
	defaultConfig := CreateDefaultConfig()
	assert.Equal(t, []string{".smali"}, defaultConfig.Extensions)
	assert.True(t, defaultConfig.IgnoreDebugInfo)
	assert.Equal(t, DiffModeFull, defaultConfig.Diff.Mode)
	assert.Nil(t, defaultConfig.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(c *Config)
		expectErr bool
	}{
		{
			name:      "default config",
			modify:    func(c *Config) {},
			expectErr: false,
		},
		{
			name:      "summary diff mode",
			modify:    func(c *Config) { c.Diff.Mode = DiffModeSummary },
			expectErr: false,
		},
		{
			name:      "unknown diff mode",
			modify:    func(c *Config) { c.Diff.Mode = "side-by-side" },
			expectErr: true,
		},
		{
			name:      "negative context",
			modify:    func(c *Config) { c.Diff.Context = -1 },
			expectErr: true,
		},
		{
			name:      "no extensions",
			modify:    func(c *Config) { c.Extensions = nil },
			expectErr: true,
		},
		{
			name:      "extension without dot",
			modify:    func(c *Config) { c.Extensions = []string{"smali"} },
			expectErr: true,
		},
		{
			name:      "extension with separator",
			modify:    func(c *Config) { c.Extensions = []string{"./smali"} },
			expectErr: true,
		},
		{
			name:      "multiple extensions",
			modify:    func(c *Config) { c.Extensions = []string{".smali", ".xml"} },
			expectErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := CreateDefaultConfig()
			tt.modify(&config)
			err := config.Validate()
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPatch_Describe(t *testing.T) {
	tests := []struct {
		patch    Patch
		expected string
	}{
		{Patch{Kind: PatchFileEdit, FilePath: "a/B.smali", Actions: []Action{{Kind: ActionReplace}}}, "PATCH: a/B.smali (1 action)"},
		{Patch{Kind: PatchFileEdit, FilePath: "a/B.smali"}, "PATCH: a/B.smali (0 actions)"},
		{Patch{Kind: PatchCreateFile, FilePath: "a/C.smali"}, "CREATE: a/C.smali"},
		{Patch{Kind: PatchRemoveFile, FilePath: "a/D.smali"}, "REMOVE: a/D.smali"},
		{Patch{Kind: PatchGlobalFindReplace, Find: "old", Replace: "new"}, `FIND_REPLACE: "old" -> "new"`},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.patch.Describe())
		})
	}
}

func TestSummary_AddCountsOutcomes(t *testing.T) {
	var summary Summary
	summary.Add(Result{Outcome: OutcomeApplied})
	summary.Add(Result{Outcome: OutcomeCreated})
	summary.Add(Result{Outcome: OutcomeSkipped})
	summary.Add(Result{Outcome: OutcomeHunkFailed})
	summary.Add(Result{Outcome: OutcomeFailed})

	assert.Equal(t, 1, summary.Applied)
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 2, summary.Failed)
	assert.Len(t, summary.Results, 5)
	assert.False(t, summary.Succeeded())
}

func TestActionKind_RequiresSignature(t *testing.T) {
	assert.True(t, ActionReplace.RequiresSignature())
	assert.True(t, ActionRemoveMethod.RequiresSignature())
	assert.True(t, ActionRemoveField.RequiresSignature())
	assert.False(t, ActionContextPatch.RequiresSignature())
	assert.False(t, ActionCreateMethod.RequiresSignature())
	assert.False(t, ActionAddField.RequiresSignature())
}
