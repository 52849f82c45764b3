package handler

import (
	"bytes"
	"errors"
	"testing"

	"smalipatch/internal/cli/output"
	"smalipatch/internal/core/domain"
	"smalipatch/internal/ports"
	"smalipatch/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseCommandHandler_PrintsDirectiveTree(t *testing.T) {
	var stdout bytes.Buffer
	t.Cleanup(output.SetWriters(&stdout, &bytes.Buffer{}))
	fs := testutil.NewTestFileSystem(t)
	require.NoError(t, fs.WriteFile("p.smalipatch", []byte(
		"CREDIT someone\nstray\nFILE a.smali\nREMOVE_FIELD flag:Z\nEND\n",
	), ports.ReadWrite))
	sut := ProvideParseCommandHandler(fs)

	err := sut.Handle("p.smalipatch")

	require.NoError(t, err)
	var doc parsedPatchFile
	require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &doc))
	assert.Equal(t, []string{"someone"}, doc.Credits)
	require.Len(t, doc.Patches, 1)
	assert.Equal(t, domain.PatchFileEdit, doc.Patches[0].Kind)
	assert.Equal(t, 3, doc.Patches[0].Line)
	require.Len(t, doc.Patches[0].Actions, 1)
	assert.Equal(t, "flag:Z", doc.Patches[0].Actions[0].Signature)
	assert.Equal(t, []string{`line 2: unrecognized line: "stray"`}, doc.Warnings)
}

func TestParseCommandHandler_NoPatchesIsFailure(t *testing.T) {
	t.Cleanup(output.SetWriters(&bytes.Buffer{}, &bytes.Buffer{}))
	fs := testutil.NewTestFileSystem(t)
	require.NoError(t, fs.WriteFile("p.smalipatch", []byte("# empty\n"), ports.ReadWrite))
	sut := ProvideParseCommandHandler(fs)

	err := sut.Handle("p.smalipatch")

	assert.Equal(t, ExitFailure, ExitCode(err))
}

func TestParseCommandHandler_MissingFileIsUsageError(t *testing.T) {
	sut := ProvideParseCommandHandler(testutil.NewTestFileSystem(t))

	err := sut.Handle("missing.smalipatch")

	assert.Equal(t, ExitUsage, ExitCode(err))
}

func TestParseCommandHandler_ReadError(t *testing.T) {
	fs := &testutil.MockFileSystem{}
	fs.On("FileExists", "p.smalipatch").Return(true, nil)
	fs.On("ReadFile", "p.smalipatch").Return(nil, errors.New("permission denied"))
	sut := ProvideParseCommandHandler(fs)

	err := sut.Handle("p.smalipatch")

	assert.ErrorContains(t, err, "permission denied")
	fs.AssertExpectations(t)
}
