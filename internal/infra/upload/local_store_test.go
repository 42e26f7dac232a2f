package upload

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anha/config"
	domainerrors "anha/internal/domain/errors"
	"anha/internal/domain/service"
)

func newTestStore(t *testing.T) (service.ImageStore, string) {
	dir := t.TempDir()
	store, err := NewLocalStore(&config.Config{Upload: &config.UploadConfig{
		Dir:       dir,
		PublicURL: "/uploads",
	}})
	require.NoError(t, err)

	return store, dir
}

func TestLocalStore_SavePNG(t *testing.T) {
	store, dir := newTestStore(t)

	url, err := store.Save(context.Background(), "bia 333.png", strings.NewReader("fake png bytes"))

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	content, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, "fake png bytes", string(content))
}

func TestLocalStore_RejectsNonImage(t *testing.T) {
	store, dir := newTestStore(t)

	_, err := store.Save(context.Background(), "malware.exe", strings.NewReader("nope"))

	assert.ErrorIs(t, err, domainerrors.ErrInvalidImageType)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestLocalStore_UniqueNamesForSameFile(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	first, err := store.Save(ctx, "photo.jpg", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := store.Save(ctx, "photo.jpg", strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestLocalStore_SanitizesName(t *testing.T) {
	store, _ := newTestStore(t)

	url, err := store.Save(context.Background(), "../..//weird name!.jpeg", strings.NewReader("x"))

	require.NoError(t, err)
	assert.NotContains(t, url, "..")
	assert.NotContains(t, url, " ")
}
