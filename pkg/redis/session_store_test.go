package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionKey = "0000000000000000000000000000000000000000000000000000000000000000"

func startSessionRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	srv, err := miniredis.Run()
	if err != nil {
		t.Skipf("skip: miniredis unavailable in this environment: %v", err)
	}
	cli := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	SetClient(cli)
	t.Cleanup(func() {
		_ = cli.Close()
		srv.Close()
	})
	return srv
}

func TestNewSessionStoreValidation(t *testing.T) {
	_, err := NewSessionStore("zz")
	assert.Error(t, err)

	_, err = NewSessionStore("0011")
	assert.Error(t, err)

	store, err := NewSessionStore(testSessionKey)
	assert.NoError(t, err)
	assert.NotNil(t, store)
}

func TestSessionStoreEncryptDecrypt(t *testing.T) {
	store, err := NewSessionStore(testSessionKey)
	require.NoError(t, err)

	enc, err := store.encrypt([]byte(`{"x":1}`))
	require.NoError(t, err)
	assert.NotEmpty(t, enc)

	dec, err := store.decrypt(enc)
	require.NoError(t, err)
	assert.Contains(t, string(dec), `"x":1`)

	_, err = store.decrypt("00")
	assert.Error(t, err)

	_, err = store.decrypt("zz-not-hex")
	assert.Error(t, err)
}

func TestSessionStoreEncryptDecrypt_InvalidKeyMaterial(t *testing.T) {
	store := &SessionStore{encryptionKey: []byte("short-key")}
	_, err := store.encrypt([]byte("x"))
	assert.Error(t, err)

	_, err = store.decrypt("00")
	assert.Error(t, err)
}

func TestSessionStoreCreateReplaceDelete(t *testing.T) {
	srv := startSessionRedis(t)

	store, err := NewSessionStore(testSessionKey)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.CreateSession(ctx, "sid-ok", &SessionData{UserID: "u-1", AccessToken: "a-ok", RefreshToken: "r-ok"}, time.Minute))
	assert.True(t, srv.Exists(sessionKeyPrefix+"sid-ok"))

	data, err := store.GetSession(ctx, "sid-ok")
	require.NoError(t, err)
	assert.Equal(t, "u-1", data.UserID)
	assert.Equal(t, "a-ok", data.AccessToken)
	assert.False(t, data.CreatedAt.IsZero())

	// role selection rotates the tokens under the same session id
	require.NoError(t, store.CreateSession(ctx, "sid-ok", &SessionData{UserID: "u-1", AccessToken: "a-new", RefreshToken: "r-new"}, time.Minute))
	data, err = store.GetSession(ctx, "sid-ok")
	require.NoError(t, err)
	assert.Equal(t, "a-new", data.AccessToken)

	require.NoError(t, store.DeleteSession(ctx, "sid-ok"))
	_, err = store.GetSession(ctx, "sid-ok")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStore_GetSessionInvalidJSONPayload(t *testing.T) {
	startSessionRedis(t)

	store, err := NewSessionStore(testSessionKey)
	require.NoError(t, err)

	enc, err := store.encrypt([]byte("plain-text"))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, Set(ctx, sessionKeyPrefix+"sid-bad-json", enc, time.Minute))

	_, err = store.GetSession(ctx, "sid-bad-json")
	assert.Error(t, err)
}

func TestSessionStore_OperationHooks(t *testing.T) {
	store, err := NewSessionStore(testSessionKey)
	require.NoError(t, err)

	origSet := setSessionValue
	origGet := getSessionValue
	origDel := delSessionValue
	t.Cleanup(func() {
		setSessionValue = origSet
		getSessionValue = origGet
		delSessionValue = origDel
	})

	setSessionValue = func(_ context.Context, _ string, _ interface{}, _ time.Duration) error {
		return errors.New("set failed")
	}
	err = store.CreateSession(context.Background(), "sid-hook", &SessionData{AccessToken: "a", RefreshToken: "r"}, time.Minute)
	assert.Error(t, err)

	getSessionValue = func(_ context.Context, _ string) (string, error) {
		return "", errors.New("connection reset")
	}
	_, err = store.GetSession(context.Background(), "sid-hook")
	assert.EqualError(t, err, "connection reset")

	delSessionValue = func(_ context.Context, _ string) error { return errors.New("delete failed") }
	assert.Error(t, store.DeleteSession(context.Background(), "sid-hook"))
}

func TestSessionStore_CreateSession_MarshalErrorBranch(t *testing.T) {
	store, err := NewSessionStore(testSessionKey)
	require.NoError(t, err)

	origMarshal := marshalSessionJSON
	t.Cleanup(func() { marshalSessionJSON = origMarshal })

	marshalSessionJSON = func(v interface{}) ([]byte, error) {
		return nil, errors.New("marshal failed")
	}

	err = store.CreateSession(context.Background(), "sid-marshal", &SessionData{AccessToken: "a", RefreshToken: "r"}, time.Minute)
	assert.Error(t, err)
}
