package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/cydxin/pixelheart-sdk/cons"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PX_SQLITE_FILE", "")
	c := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Equal(t, "pixelheart.db", c.SQLiteFile)
	assert.Equal(t, "disk", c.Storage)
	assert.Equal(t, "0.0.0.0:6789", c.BindAddress)
}

func TestLoadFromEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PX_STORAGE=MinIO\nPX_REDIS_DB=3\nPX_DEBUG=off\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("PX_STORAGE")
		os.Unsetenv("PX_REDIS_DB")
		os.Unsetenv("PX_DEBUG")
	})

	c := Load(envFile)
	assert.Equal(t, "minio", c.Storage)
	assert.Equal(t, 3, c.RedisDB)
	assert.False(t, c.Debug)
}

func TestEnvOverridesEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PX_BIND_ADDRESS=127.0.0.1:1\n"), 0o644))
	t.Setenv("PX_BIND_ADDRESS", "127.0.0.1:2")

	c := Load(envFile)
	assert.Equal(t, "127.0.0.1:2", c.BindAddress)
}

func TestOpenDBSQLite(t *testing.T) {
	c := defaults()
	c.SQLiteFile = filepath.Join(t.TempDir(), "px.db")
	db, err := c.OpenDB()
	require.NoError(t, err)
	require.NoError(t, db.Exec("SELECT 1").Error)
}

func TestOpenRedis(t *testing.T) {
	c := defaults()
	rdb, err := c.OpenRedis(context.Background())
	require.NoError(t, err)
	assert.Nil(t, rdb)

	mr := miniredis.RunT(t)
	c.RedisAddr = mr.Addr()
	rdb, err = c.OpenRedis(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rdb)
	defer rdb.Close()
}

func TestOpenDiskBuckets(t *testing.T) {
	c := defaults()
	c.DiskDir = t.TempDir()
	buckets, err := c.OpenBuckets(context.Background())
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	assert.Equal(t, cons.BucketAvatars, buckets[cons.BucketAvatars].Name())
	assert.DirExists(t, filepath.Join(c.DiskDir, "cosplay-images"))
}

func TestOpenBucketsUnknownStorage(t *testing.T) {
	c := defaults()
	c.Storage = "ftp"
	_, err := c.OpenBuckets(context.Background())
	assert.EqualError(t, err, `unknown storage "ftp"`)
}
