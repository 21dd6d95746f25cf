package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRunUsage(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer

	code := run([]string{"kredio"}, &stdout, &stderr)
	if code != 2 {
		t.Fatalf("expected code 2, got %d", code)
	}
	if !strings.Contains(stderr.String(), "Kredio CLI") {
		t.Fatalf("unexpected stderr: %q", stderr.String())
	}
}

func TestApplySuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tools/submitLoanApplication" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"decision":{"approve":true,"monthlyPayment":3316.13,"reasons":["OK"]},"customerSummary":"onaylandı"}`))
	}))
	defer server.Close()

	var stdout bytes.Buffer
	var stderr bytes.Buffer

	code := run([]string{"kredio", "apply", "--addr", server.URL, "--customer", "1001", "--amount", "50000", "--term", "24"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected code 0, got %d: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "approve=true") {
		t.Fatalf("unexpected stdout: %q", stdout.String())
	}
}

func TestApplyToolError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ok":false,"error":"invalid_amount"}`))
	}))
	defer server.Close()

	var stdout bytes.Buffer
	var stderr bytes.Buffer

	code := run([]string{"kredio", "apply", "--addr", server.URL, "--customer", "1001", "--amount", "5", "--term", "12"}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("expected code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "invalid_amount") {
		t.Fatalf("unexpected stderr: %q", stderr.String())
	}
}

func TestApplyMissingFlags(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer

	code := run([]string{"kredio", "apply", "--amount", "1000"}, &stdout, &stderr)
	if code != 2 {
		t.Fatalf("expected code 2, got %d", code)
	}
}

func TestPlanJSONOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true,"summary":{"monthlyPayment":871.11,"rateMonthly":0.03},"schedule":[]}`))
	}))
	defer server.Close()

	var stdout bytes.Buffer
	var stderr bytes.Buffer

	code := run([]string{"kredio", "plan", "--addr", server.URL, "--amount", "10000", "--term", "12", "--json"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected code 0, got %d: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), `"monthlyPayment":871.11`) {
		t.Fatalf("unexpected stdout: %q", stdout.String())
	}
}

func TestQuoteSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tools/payoffQuote" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"penalty":200,"payoffAmount":10200,"note":"Erken kapama"}`))
	}))
	defer server.Close()

	var stdout bytes.Buffer
	var stderr bytes.Buffer

	code := run([]string{"kredio", "quote", "--addr", server.URL, "--customer", "1001", "--loan", "KRD-1"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected code 0, got %d: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "payoff=10200.00") {
		t.Fatalf("unexpected stdout: %q", stdout.String())
	}
}

func TestQuoteInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{invalid"))
	}))
	defer server.Close()

	var stdout bytes.Buffer
	var stderr bytes.Buffer

	code := run([]string{"kredio", "quote", "--addr", server.URL, "--customer", "1001", "--loan", "KRD-1"}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("expected code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "invalid response") {
		t.Fatalf("unexpected stderr: %q", stderr.String())
	}
}
