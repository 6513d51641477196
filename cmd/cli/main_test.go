package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func TestPrintJSON(t *testing.T) {
	out := captureOutput(t, func() {
		printJSON(struct {
			A int `json:"a"`
		}{A: 1})
	})

	expected := "{\n  \"a\": 1\n}\n"
	if out != expected {
		t.Fatalf("unexpected json output:\n%s", out)
	}
}

func TestAPIGetSendsOwnerHeader(t *testing.T) {
	var gotOwner string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOwner = r.Header.Get("X-Owner-ID")
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	origURL, origOwner := baseURL, ownerID
	defer func() { baseURL, ownerID = origURL, origOwner }()
	baseURL, ownerID = srv.URL, "owner-7"

	out := captureOutput(t, func() {
		if err := apiGet("/api/v1/daily/status"); err != nil {
			t.Fatalf("request failed: %v", err)
		}
	})

	if gotOwner != "owner-7" {
		t.Fatalf("owner header = %q, want owner-7", gotOwner)
	}
	if !strings.Contains(out, `"status": "ok"`) {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestAPIPostReportsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"validation_error"}`))
	}))
	defer srv.Close()

	origURL := baseURL
	defer func() { baseURL = origURL }()
	baseURL = srv.URL

	err := apiPost("/api/v1/daily/close", map[string]string{"action": "SAVE"})
	if err == nil {
		t.Fatal("expected an error for a 400 response")
	}
	if !strings.Contains(err.Error(), "status 400") {
		t.Fatalf("unexpected error: %v", err)
	}
}
