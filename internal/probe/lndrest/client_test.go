// internal/probe/lndrest/client_test.go
package lndrest

import (
	"encoding/hex"
	"encoding/pem"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/engine-watch/internal/engine"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(Config{Endpoint: srv.URL, Timeout: time.Second})
	require.NoError(t, err)
	return c
}

func TestGetInfo_Decodes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, pathGetInfo, r.URL.Path)
		_, _ = w.Write([]byte(`{
			"version": "0.7.1-beta commit=v0.7.1-beta-rc1",
			"synced_to_chain": true,
			"chains": [{"chain": "bitcoin", "network": "testnet"}]
		}`))
	})

	info, err := c.GetInfo()
	require.NoError(t, err)
	assert.Equal(t, "0.7.1-beta commit=v0.7.1-beta-rc1", info.Version)
	assert.True(t, info.SyncedToChain)
	assert.Equal(t, []engine.Chain{{Chain: "bitcoin", Network: "testnet"}}, info.Chains)
}

func TestGetInfo_EmptyBodyIsBlankInfo(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	info, err := c.GetInfo()
	require.NoError(t, err)
	assert.Empty(t, info.Chains)
}

func TestGetInfo_MalformedBodyIsLocalError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := c.GetInfo()
	require.Error(t, err)

	var pe *engine.ProbeError
	assert.False(t, errors.As(err, &pe), "malformed payload must not look like a node failure")
}

func TestGatewayErrorMapped(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"code": 2, "message": "wallet already exists", "details": []}`))
	})

	err := c.GenSeed()
	require.Error(t, err)

	var pe *engine.ProbeError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Code)
	assert.Equal(t, "wallet already exists", pe.Message)

	kind, ok := engine.DefaultErrorClassifier().Match(err)
	assert.True(t, ok)
	assert.Equal(t, engine.KindWalletExists, kind)
}

func TestLegacyGatewayErrorField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotImplemented)
		_, _ = w.Write([]byte(`{"error": "unknown service lnrpc.Lightning", "code": 12}`))
	})

	var pe *engine.ProbeError
	require.True(t, errors.As(c.CheckAvailable(), &pe))
	assert.Equal(t, 12, pe.Code)
	assert.Equal(t, "unknown service lnrpc.Lightning", pe.Message)
}

func TestHTTPStatusFallback(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not here", http.StatusNotImplemented)
	})

	kind, ok := engine.DefaultErrorClassifier().Match(c.CheckAvailable())
	assert.True(t, ok)
	assert.Equal(t, engine.KindNotImplemented, kind)
}

func TestUnreachableNodeIsProbeFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(Config{Endpoint: url, Timeout: time.Second})
	require.NoError(t, err)

	var pe *engine.ProbeError
	require.True(t, errors.As(c.CheckAvailable(), &pe))
	assert.Equal(t, 14, pe.Code)
}

func TestUntrustedCertificateIsLocalError(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"version":"0.7.1-beta","synced_to_chain":true}`))
	}))
	t.Cleanup(srv.Close)

	c, err := New(Config{Endpoint: srv.URL, Timeout: time.Second})
	require.NoError(t, err)

	_, err = c.GetInfo()
	require.Error(t, err)

	var pe *engine.ProbeError
	assert.False(t, errors.As(err, &pe), "certificate failure must not look like node state: %v", err)

	e := &engine.Engine{ChainName: "bitcoin", MinVersion: "0.7.0-beta", Info: c, Seed: c, Availability: c}
	_, err = engine.NewClassifier(engine.DefaultErrorClassifier()).Classify(e)
	assert.Error(t, err)
}

func TestPinnedCertificate(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"version":"0.7.1-beta","synced_to_chain":true}`))
	}))
	t.Cleanup(srv.Close)

	path := filepath.Join(t.TempDir(), "tls.cert")
	block := &pem.Block{Type: "CERTIFICATE", Bytes: srv.Certificate().Raw}
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(block), 0o600))

	c, err := New(Config{Endpoint: srv.URL, TLSCertPath: path, Timeout: time.Second})
	require.NoError(t, err)

	info, err := c.GetInfo()
	require.NoError(t, err)
	assert.True(t, info.SyncedToChain)
}

func TestMacaroonHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "admin.macaroon")
	require.NoError(t, os.WriteFile(path, []byte{0x02, 0x01, 0xff}, 0o600))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, hex.EncodeToString([]byte{0x02, 0x01, 0xff}), r.Header.Get(macaroonHeader))
		_, _ = w.Write([]byte(`{"mnemonic": []}`))
	}))
	t.Cleanup(srv.Close)

	c, err := New(Config{Endpoint: srv.URL, MacaroonPath: path, Timeout: time.Second})
	require.NoError(t, err)
	require.NoError(t, c.GenSeed())
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)

	_, err = New(Config{Endpoint: "ftp://node"})
	assert.Error(t, err)

	_, err = New(Config{Endpoint: "https://node:8080", TLSCertPath: "/does/not/exist"})
	assert.Error(t, err)
}

func TestClassifierEndToEnd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(pathGetInfo, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotImplemented)
		_, _ = w.Write([]byte(`{"code": 12, "message": "unknown service lnrpc.Lightning"}`))
	})
	mux.HandleFunc(pathGenSeed, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"code": 2, "message": "wallet already exists"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c, err := New(Config{Endpoint: srv.URL, Timeout: time.Second})
	require.NoError(t, err)

	e := &engine.Engine{
		ChainName:    "bitcoin",
		MinVersion:   "0.7.0-beta",
		Info:         c,
		Seed:         c,
		Availability: c,
	}

	got, err := engine.NewClassifier(engine.DefaultErrorClassifier()).Classify(e)
	require.NoError(t, err)
	assert.Equal(t, engine.StatusLocked, got)
}
