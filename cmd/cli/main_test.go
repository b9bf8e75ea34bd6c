package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"
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

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("expected short unchanged, got %q", got)
	}

	if got := truncate("longerstring", 6); got != "lon..." {
		t.Fatalf("expected lon..., got %q", got)
	}
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

func TestBalanceCmdSendsTenantHeader(t *testing.T) {
	var gotPath, gotTenant string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotTenant = r.Header.Get("X-Tenant-ID")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"outstanding":"50"}`))
	}))
	defer server.Close()

	baseURL = server.URL
	tenant = "clinic-1"
	timeout = time.Second

	cmd := balanceCmd()
	cmd.SetArgs([]string{"patient-1"})

	out := captureOutput(t, func() {
		if err := cmd.Execute(); err != nil {
			t.Fatalf("command failed: %v", err)
		}
	})

	if gotPath != "/api/v1/patients/patient-1/balance" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotTenant != "clinic-1" {
		t.Fatalf("expected tenant header, got %q", gotTenant)
	}
	if !strings.Contains(out, `"outstanding": "50"`) {
		t.Fatalf("expected balance in output, got %q", out)
	}
}

func TestPayCmdPostsBody(t *testing.T) {
	var gotMethod, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"pay-1"}`))
	}))
	defer server.Close()

	baseURL = server.URL
	tenant = "clinic-1"
	timeout = time.Second

	cmd := payCmd()
	cmd.SetArgs([]string{"patient-1", "75.50", "--note", "front desk"})

	captureOutput(t, func() {
		if err := cmd.Execute(); err != nil {
			t.Fatalf("command failed: %v", err)
		}
	})

	if gotMethod != http.MethodPost {
		t.Fatalf("expected POST, got %s", gotMethod)
	}
	if !strings.Contains(gotBody, `"amount":"75.50"`) || !strings.Contains(gotBody, `"note":"front desk"`) {
		t.Fatalf("unexpected request body %q", gotBody)
	}
}
