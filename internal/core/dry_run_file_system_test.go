package core

import (
	"io/fs"
	"testing"

	"smalipatch/internal/ports"
	"smalipatch/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDryRunFileSystem_WritesStayInMemory(t *testing.T) {
	base := testutil.NewTestFileSystem(t)
	base.Put("work/A.smali", "original")
	sut := newDryRunFileSystem(base)

	require.NoError(t, sut.WriteFile("work/A.smali", []byte("changed\n"), ports.ReadWrite))
	require.NoError(t, sut.WriteFile("work/new/B.smali", []byte("new\n"), ports.ReadWrite))

	data, err := sut.ReadFile("work/A.smali")
	require.NoError(t, err)
	assert.Equal(t, "changed\n", string(data))
	assert.Equal(t, []string{"original"}, base.Lines("work/A.smali"))
	assert.False(t, base.Exists("work/new/B.smali"))

	exists, err := sut.FileExists("work/new/B.smali")
	require.NoError(t, err)
	assert.True(t, exists)
	dirExists, err := sut.DirExists("work/new")
	require.NoError(t, err)
	assert.True(t, dirExists)
}

func TestDryRunFileSystem_RemovalsStayInMemory(t *testing.T) {
	base := testutil.NewTestFileSystem(t)
	base.Put("work/A.smali", "a")
	sut := newDryRunFileSystem(base)

	require.NoError(t, sut.RemoveFile("work/A.smali"))

	exists, err := sut.FileExists("work/A.smali")
	require.NoError(t, err)
	assert.False(t, exists)
	_, err = sut.ReadFile("work/A.smali")
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.True(t, base.Exists("work/A.smali"))
	assert.ErrorIs(t, sut.RemoveFile("work/A.smali"), fs.ErrNotExist)
}

func TestDryRunFileSystem_ListFilesMergesOverlay(t *testing.T) {
	base := testutil.NewTestFileSystem(t)
	base.Put("work/a/A.smali", "a")
	base.Put("work/b/B.smali", "b")
	sut := newDryRunFileSystem(base)

	require.NoError(t, sut.RemoveFile("work/a/A.smali"))
	require.NoError(t, sut.WriteFile("work/c/C.smali", []byte("c\n"), ports.ReadWrite))
	require.NoError(t, sut.WriteFile("work/c/notes.txt", []byte("c\n"), ports.ReadWrite))
	require.NoError(t, sut.WriteFile("work/b/B.smali", []byte("b2\n"), ports.ReadWrite))

	files, err := sut.ListFiles("work", []string{".smali"})

	require.NoError(t, err)
	assert.Equal(t, []string{"b/B.smali", "c/C.smali"}, files)
}
