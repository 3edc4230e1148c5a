package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "payment-proofs", "proof.png",
		strings.NewReader("fake image bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/uploads/payment-proofs/"))
	assert.True(t, strings.HasSuffix(url, "_proof.png"))

	// The file lands under dir/category with the served name
	name := filepath.Base(url)
	data, err := os.ReadFile(filepath.Join(dir, "payment-proofs", name))
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))
}

func TestLocalStoreSaveUniqueNames(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Save(context.Background(), "docs", "id.pdf", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := store.Save(context.Background(), "docs", "id.pdf", strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestUniqueNameStripsPathAndSpaces(t *testing.T) {
	name := uniqueName("../some dir/my file.png")
	assert.False(t, strings.Contains(name, "/"))
	assert.False(t, strings.Contains(name, " "))
	assert.True(t, strings.HasSuffix(name, "_my_file.png"))
}
