package parser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchRemoteData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[["ok", 1]]`))
	}))
	defer server.Close()

	data, err := FetchRemoteData(context.Background(), RemoteConfig{URL: server.URL, Token: "secret"})
	if err != nil {
		t.Fatalf("FetchRemoteData() error = %v", err)
	}
	if string(data) != `[["ok", 1]]` {
		t.Errorf("FetchRemoteData() = %s", data)
	}
}

func TestFetchRemoteDataTokenFromEnv(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer from-env" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`null`))
	}))
	defer server.Close()

	t.Setenv(TokenEnvVar, "from-env")
	if _, err := FetchRemoteData(context.Background(), RemoteConfig{URL: server.URL}); err != nil {
		t.Errorf("FetchRemoteData() error = %v", err)
	}
}

func TestFetchRemoteDataErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	if _, err := FetchRemoteData(context.Background(), RemoteConfig{URL: server.URL}); err == nil {
		t.Error("expected error for 404 response")
	}
	if _, err := FetchRemoteData(context.Background(), RemoteConfig{}); err == nil {
		t.Error("expected error for empty URL")
	}
}
