package disk

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smallbiznis/backoffice/internal/upload/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, "/uploads/")
	require.NoError(t, err)

	urlPath, err := store.Put(context.Background(), "banner.png", strings.NewReader("data"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/banner.png", urlPath)

	raw, err := os.ReadFile(filepath.Join(dir, "banner.png"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(raw))

	require.NoError(t, store.Delete(context.Background(), "banner.png"))
	require.NoError(t, store.Delete(context.Background(), "banner.png"))
	_, err = os.Stat(filepath.Join(dir, "banner.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestPutRejectsTraversal(t *testing.T) {
	store, err := NewStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	for _, key := range []string{"", "../escape.png", "nested/file.png", ".hidden"} {
		_, err := store.Put(context.Background(), key, strings.NewReader("x"))
		assert.ErrorIs(t, err, domain.ErrInvalidKey, key)
	}
}
