package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestFileHost_IsOpen_NoLockFiles(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "contract.docx")
	touch(t, doc)

	assert.False(t, FileHost{}.IsOpen(doc))
}

func TestFileHost_IsOpen_WordOwnerFile(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "contract.docx")
	touch(t, doc)
	// Word strips the first two characters of the file name.
	touch(t, filepath.Join(dir, "~$ntract.docx"))

	assert.True(t, FileHost{}.IsOpen(doc))
}

func TestFileHost_IsOpen_FullNameOwnerFile(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "contract.docx")
	touch(t, doc)
	touch(t, filepath.Join(dir, "~$contract.docx"))

	assert.True(t, FileHost{}.IsOpen(doc))
}

func TestFileHost_IsOpen_LibreOfficeLock(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "contract.docx")
	touch(t, doc)
	touch(t, filepath.Join(dir, ".~lock.contract.docx#"))

	assert.True(t, FileHost{}.IsOpen(doc))
}

func TestFileHost_SelectionFormatting_Unavailable(t *testing.T) {
	sel, err := FileHost{}.SelectionFormatting()
	assert.Nil(t, sel)
	assert.ErrorIs(t, err, ErrNoLiveSession)
}
