package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		want    string
		wantErr bool
	}{
		{name: "plain", key: "seeds/records.yaml", want: "seeds/records.yaml"},
		{name: "spaces", key: "my seeds/records.yaml", want: "my_seeds/records.yaml"},
		{name: "backslashes", key: "seeds\\records.yaml", want: "seeds/records.yaml"},
		{name: "escape attempt", key: "../../etc/passwd", want: "etc/passwd"},
		{name: "empty", key: "", wantErr: true},
		{name: "root only", key: "/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeKey(tt.key)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocalStorageRoundTrip(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	path, err := store.Upload(ctx, "seeds/records.yaml", strings.NewReader("sites: []\n"))
	require.NoError(t, err)
	assert.Equal(t, "seeds/records.yaml", path)

	rc, err := store.Download(ctx, path)
	require.NoError(t, err)
	defer rc.Close()

	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "sites: []\n", string(body))
}

func TestLocalStorageDownloadMissing(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Download(context.Background(), "missing.yaml")
	assert.True(t, errors.Is(err, ErrObjectNotFound))
}

func TestNewStorageRejectsUnknownType(t *testing.T) {
	_, err := NewStorage(StorageConfig{Type: "ftp"})
	assert.Error(t, err)

	_, err = NewStorage(StorageConfig{Type: StorageTypeS3})
	assert.Error(t, err)
}

func TestGetContentType(t *testing.T) {
	assert.Equal(t, "application/yaml", getContentType("a/b.yaml"))
	assert.Equal(t, "application/yaml", getContentType("b.yml"))
	assert.Equal(t, "application/json", getContentType("b.json"))
	assert.Equal(t, "application/octet-stream", getContentType("b.bin"))
}
