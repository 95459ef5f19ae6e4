package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Login(t *testing.T) {
	var gotPath, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotPath, gotBody = r.URL.Path, string(body)
		_, _ = io.WriteString(w, `{"success":true,"code":200,"msg":"success","data":{"token":"t","user":{"id":"u"}}}`)
	}))
	defer server.Close()

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-base", server.URL, "login", `{"type":"pwd","account":"a","password":"b"}`}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	assert.Equal(t, "/user/login", gotPath)
	assert.JSONEq(t, `{"type":"pwd","account":"a","password":"b"}`, gotBody)

	var env map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &env))
	assert.Equal(t, true, env["success"])
}

func TestRun_TokenAndGet(t *testing.T) {
	var auth, method string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth, method = r.Header.Get("Authorization"), r.Method
		_, _ = io.WriteString(w, `{"success":true,"code":200,"msg":"success","data":{"id":"u"}}`)
	}))
	defer server.Close()

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-base", server.URL, "-token", "abc", "user-info"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, "Bearer abc", auth)
	assert.Equal(t, http.MethodGet, method)
}

func TestRun_Failures(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run(context.Background(), nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "user-info")

	stderr.Reset()
	assert.Equal(t, 2, run(context.Background(), []string{"fly"}, &stdout, &stderr))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	stderr.Reset()
	assert.Equal(t, 1, run(context.Background(), []string{"-base", server.URL, "logout"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "code 1006")

	stderr.Reset()
	assert.Equal(t, 1, run(context.Background(), []string{"-base", server.URL, "login", `{bad`}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "code 1001")
}
