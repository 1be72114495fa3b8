package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDiskStore(t *testing.T) *diskStore {
	t.Helper()
	d, err := newDiskStore(t.TempDir())
	require.NoError(t, err)
	return d
}

func TestDiskSaveOpenDelete(t *testing.T) {
	d := newTestDiskStore(t)
	ctx := context.Background()

	content := "fake png bytes"
	err := d.Save(ctx, "user_1_avatar.png", "image/png", int64(len(content)), strings.NewReader(content))
	require.NoError(t, err)

	obj, err := d.Open(ctx, "user_1_avatar.png")
	require.NoError(t, err)
	defer obj.Content.Close()

	got, err := io.ReadAll(obj.Content)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
	assert.Equal(t, "image/png", obj.ContentType)
	assert.Equal(t, int64(len(content)), obj.Size)

	require.NoError(t, d.Delete(ctx, "user_1_avatar.png"))
	_, err = d.Open(ctx, "user_1_avatar.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDiskSaveReplacesExisting(t *testing.T) {
	d := newTestDiskStore(t)
	ctx := context.Background()

	require.NoError(t, d.Save(ctx, "a.png", "image/png", 3, strings.NewReader("old")))
	require.NoError(t, d.Save(ctx, "a.png", "image/png", 3, strings.NewReader("new")))

	obj, err := d.Open(ctx, "a.png")
	require.NoError(t, err)
	defer obj.Content.Close()

	got, err := io.ReadAll(obj.Content)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestDiskRejectsPathEscapes(t *testing.T) {
	d := newTestDiskStore(t)
	ctx := context.Background()

	for _, key := range []string{"../secret", "a/b.png", ".hidden", ""} {
		_, err := d.Open(ctx, key)
		assert.ErrorIs(t, err, ErrNotFound, "key %q", key)

		err = d.Save(ctx, key, "image/png", 1, strings.NewReader("x"))
		assert.Error(t, err, "key %q", key)
	}
}

func TestDiskDeleteMissingIsNotAnError(t *testing.T) {
	d := newTestDiskStore(t)
	assert.NoError(t, d.Delete(context.Background(), "never-existed.png"))
}
