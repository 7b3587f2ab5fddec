package ui

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dhamidi/calc/editor"
	"github.com/dhamidi/calc/expr"
)

func newTestClient(t *testing.T, opts ...Option) (*httptest.Server, *http.Client) {
	t.Helper()
	server, err := NewServer(opts...)
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}
	ts := httptest.NewServer(server)
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar error: %v", err)
	}
	return ts, &http.Client{Jar: jar}
}

func pressKey(t *testing.T, ts *httptest.Server, client *http.Client, key string) KeyResult {
	t.Helper()
	resp, err := client.PostForm(ts.URL+"/key", url.Values{"key": {key}})
	if err != nil {
		t.Fatalf("POST /key error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /key status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var result KeyResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return result
}

func TestIndexRendersKeypad(t *testing.T) {
	ts, client := newTestClient(t)

	resp, err := client.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET / error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var body bytes.Buffer
	if _, err := body.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	for _, want := range []string{`id="result"`, `data-key="Enter"`, `data-key="×"`, `data-reject-pulse="400"`} {
		if !strings.Contains(body.String(), want) {
			t.Errorf("body does not contain %s", want)
		}
	}

	u, _ := url.Parse(ts.URL)
	if len(client.Jar.Cookies(u)) == 0 {
		t.Errorf("no session cookie set")
	}
}

func TestKeySequence(t *testing.T) {
	ts, client := newTestClient(t)

	for _, key := range []string{"0", ".", "1", "+", "0", ".", "2"} {
		pressKey(t, ts, client, key)
	}
	result := pressKey(t, ts, client, "Enter")
	if result.Display != "0.3" {
		t.Errorf("Display = %q, want %q", result.Display, "0.3")
	}
	if result.Action != "evaluate" {
		t.Errorf("Action = %q, want %q", result.Action, "evaluate")
	}
	if result.State != "normal" {
		t.Errorf("State = %q, want %q", result.State, "normal")
	}
}

func TestKeyRejectedAndError(t *testing.T) {
	ts, client := newTestClient(t)

	result := pressKey(t, ts, client, "*")
	if !result.Rejected {
		t.Errorf("Rejected = false, want true")
	}
	if result.Display != "" {
		t.Errorf("Display = %q, want empty", result.Display)
	}

	pressKey(t, ts, client, "8")
	pressKey(t, ts, client, "/")
	pressKey(t, ts, client, "0")
	result = pressKey(t, ts, client, "Enter")
	if result.Display != expr.ErrorMarker || result.State != "error" {
		t.Errorf("got %q (%s), want %q (error)", result.Display, result.State, expr.ErrorMarker)
	}

	result = pressKey(t, ts, client, "3")
	if result.Display != "3" || result.State != "normal" || !result.Scroll {
		t.Errorf("after error, got %+v", result)
	}
}

func TestClearEndpoint(t *testing.T) {
	ts, client := newTestClient(t)
	pressKey(t, ts, client, "5")

	resp, err := client.Post(ts.URL+"/clear", "", nil)
	if err != nil {
		t.Fatalf("POST /clear error: %v", err)
	}
	defer resp.Body.Close()
	var result KeyResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Display != "" || !result.Reset {
		t.Errorf("got %+v, want empty display and reset", result)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	ts, first := newTestClient(t)
	jar, _ := cookiejar.New(nil)
	second := &http.Client{Jar: jar}

	pressKey(t, ts, first, "1")
	pressKey(t, ts, first, "2")
	result := pressKey(t, ts, second, "9")
	if result.Display != "9" {
		t.Errorf("second session Display = %q, want %q", result.Display, "9")
	}
}

func TestBaselineVariant(t *testing.T) {
	ts, client := newTestClient(t, WithEditorOptions(editor.WithVariant(editor.VariantBaseline)))

	pressKey(t, ts, client, "3")
	pressKey(t, ts, client, "+")
	result := pressKey(t, ts, client, "-")
	if result.Display != "3+-" {
		t.Errorf("Display = %q, want %q", result.Display, "3+-")
	}
	if result := pressKey(t, ts, client, "Delete"); result.Action != "none" {
		t.Errorf("Delete Action = %q, want %q", result.Action, "none")
	}
}

func TestKeyMissing(t *testing.T) {
	ts, client := newTestClient(t)
	resp, err := client.PostForm(ts.URL+"/key", url.Values{})
	if err != nil {
		t.Fatalf("POST /key error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestEvaluateEndpoint(t *testing.T) {
	tests := []struct {
		body   string
		status int
		want   evaluateResponse
	}{
		{`{"expression":"2×(3+4)"}`, http.StatusOK, evaluateResponse{Result: "14"}},
		{`{"expression":"8/0"}`, http.StatusUnprocessableEntity, evaluateResponse{Error: "Error"}},
		{`{"expression":""}`, http.StatusUnprocessableEntity, evaluateResponse{Error: "Error"}},
		{`not json`, http.StatusBadRequest, evaluateResponse{}},
	}

	ts, client := newTestClient(t)
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			resp, err := client.Post(ts.URL+"/evaluate", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("POST /evaluate error: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if tt.status == http.StatusBadRequest {
				return
			}
			var got evaluateResponse
			if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got != tt.want {
				t.Errorf("response = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStaticAssets(t *testing.T) {
	ts, client := newTestClient(t)
	for _, path := range []string{"/static/calculator.js", "/static/calculator.css"} {
		resp, err := client.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("GET %s error: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s status = %d, want %d", path, resp.StatusCode, http.StatusOK)
		}
	}
}

func TestEvaluateEndpointRejectsLargeBody(t *testing.T) {
	ts, client := newTestClient(t)
	body := `{"expression":"` + strings.Repeat("1", maxEvaluateBody) + `"}`
	resp, err := client.Post(ts.URL+"/evaluate", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /evaluate error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusRequestEntityTooLarge)
	}
}
