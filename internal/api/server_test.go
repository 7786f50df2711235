package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"subtrans/internal/api"
	"subtrans/internal/config"
	"subtrans/internal/logging"
	"subtrans/internal/session"
	"subtrans/internal/testsupport"
)

func newTestServer(t *testing.T, cfg *config.Config, translator session.Translator) *httptest.Server {
	t.Helper()
	srv := api.New(cfg, translator, logging.NewNop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, ts *httptest.Server, method, path string, body any, out any) int {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("%s %s: unexpected content type %q", method, path, ct)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, testsupport.NewConfig(t), nil)

	var resp api.HealthResponse
	if code := doJSON(t, ts, http.MethodGet, "/api/health", nil, &resp); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if resp.Status != "ok" || resp.Session == "" {
		t.Fatalf("unexpected health response: %+v", resp)
	}
}

func TestSessionWorkflow(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	dir := testsupport.BaseDir(cfg)
	input := testsupport.WriteFile(t, dir, "movie.srt", testsupport.SampleSRT)
	translator := &testsupport.StubTranslator{}
	ts := newTestServer(t, cfg, translator)

	var state api.SessionResponse
	if code := doJSON(t, ts, http.MethodGet, "/api/session", nil, &state); code != http.StatusOK {
		t.Fatalf("session: expected 200, got %d", code)
	}
	if state.Session.State != session.StateEmpty || len(state.Cues) != 0 {
		t.Fatalf("expected empty session, got %+v", state)
	}

	if code := doJSON(t, ts, http.MethodPost, "/api/session/load", api.LoadRequest{Path: input}, &state); code != http.StatusOK {
		t.Fatalf("load: expected 200, got %d", code)
	}
	if state.Session.State != session.StateLoaded || len(state.Cues) != 3 {
		t.Fatalf("unexpected loaded session: %+v", state.Session)
	}
	if state.Cues[0].Translation != nil {
		t.Fatalf("expected no translation before translate, got %q", *state.Cues[0].Translation)
	}

	if code := doJSON(t, ts, http.MethodPost, "/api/session/translate", api.TranslateRequest{To: "ZH-cn"}, &state); code != http.StatusOK {
		t.Fatalf("translate: expected 200, got %d", code)
	}
	if state.Session.State != session.StateTranslated || state.Session.Translated != 3 {
		t.Fatalf("unexpected translated session: %+v", state.Session)
	}
	if state.Session.TargetLanguage != "zh" || state.Session.SourceLanguage != "auto" {
		t.Fatalf("unexpected languages: %+v", state.Session)
	}
	if got := *state.Cues[1].Translation; got != "[zh] How are you?" {
		t.Fatalf("unexpected translation: %q", got)
	}
	if calls := translator.Calls(); len(calls) != 3 || calls[0] != "Hello there." {
		t.Fatalf("unexpected translator calls: %v", calls)
	}

	var draft api.DraftResponse
	if code := doJSON(t, ts, http.MethodGet, "/api/session/draft", nil, &draft); code != http.StatusOK {
		t.Fatalf("draft: expected 200, got %d", code)
	}
	if !strings.HasPrefix(draft.Draft, "1. [zh] Hello there.\n\n2. ") {
		t.Fatalf("unexpected draft: %q", draft.Draft)
	}
	if !strings.HasPrefix(draft.Source, "1. Hello there.") {
		t.Fatalf("unexpected source: %q", draft.Source)
	}

	edited := "1. 你好。\n\n2. 你好吗？\n\n3. 很好，谢谢。"
	if code := doJSON(t, ts, http.MethodPut, "/api/session/edits", api.EditsRequest{Draft: edited}, &state); code != http.StatusOK {
		t.Fatalf("edits: expected 200, got %d", code)
	}
	if got := *state.Cues[2].Translation; got != "很好，谢谢。" {
		t.Fatalf("unexpected edited translation: %q", got)
	}

	output := filepath.Join(dir, "movie.zh.ass")
	var exported api.ExportResponse
	if code := doJSON(t, ts, http.MethodPost, "/api/session/export", api.ExportRequest{Path: output}, &exported); code != http.StatusOK {
		t.Fatalf("export: expected 200, got %d", code)
	}
	if exported.Path != output || exported.Session.State != session.StateExported {
		t.Fatalf("unexpected export response: %+v", exported)
	}
	written := testsupport.ReadFile(t, output)
	if !strings.Contains(written, "Dialogue: 0,0:00:03.00,0:00:04.00,Default,,0,0,0,,你好吗？") {
		t.Fatalf("unexpected exported file:\n%s", written)
	}
}

func TestErrorStatusMapping(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	dir := testsupport.BaseDir(cfg)
	input := testsupport.WriteFile(t, dir, "movie.srt", testsupport.SampleSRT)
	notes := testsupport.WriteFile(t, dir, "notes.txt", "hello")

	tests := []struct {
		name       string
		translator session.Translator
		load       string
		method     string
		path       string
		body       any
		wantStatus int
		wantKind   string
	}{
		{name: "missing file", method: http.MethodPost, path: "/api/session/load", body: api.LoadRequest{Path: filepath.Join(dir, "missing.srt")}, wantStatus: http.StatusNotFound, wantKind: "not_found"},
		{name: "unsupported extension", method: http.MethodPost, path: "/api/session/load", body: api.LoadRequest{Path: notes}, wantStatus: http.StatusUnsupportedMediaType, wantKind: "unsupported"},
		{name: "empty load path", method: http.MethodPost, path: "/api/session/load", body: api.LoadRequest{}, wantStatus: http.StatusBadRequest, wantKind: "validation"},
		{name: "unknown field", method: http.MethodPost, path: "/api/session/load", body: map[string]string{"file": input}, wantStatus: http.StatusBadRequest, wantKind: "validation"},
		{name: "translate without track", translator: &testsupport.StubTranslator{}, method: http.MethodPost, path: "/api/session/translate", wantStatus: http.StatusBadRequest, wantKind: "validation"},
		{name: "translate without translator", load: input, method: http.MethodPost, path: "/api/session/translate", wantStatus: http.StatusServiceUnavailable, wantKind: "validation"},
		{name: "translate to auto", translator: &testsupport.StubTranslator{}, load: input, method: http.MethodPost, path: "/api/session/translate", body: api.TranslateRequest{To: "auto"}, wantStatus: http.StatusBadRequest, wantKind: "validation"},
		{name: "translate unknown language", translator: &testsupport.StubTranslator{}, load: input, method: http.MethodPost, path: "/api/session/translate", body: api.TranslateRequest{To: "notalanguage"}, wantStatus: http.StatusBadRequest, wantKind: "validation"},
		{name: "translator failure", translator: &testsupport.StubTranslator{Fail: "How are you?"}, load: input, method: http.MethodPost, path: "/api/session/translate", wantStatus: http.StatusInternalServerError, wantKind: "internal"},
		{name: "draft without track", method: http.MethodGet, path: "/api/session/draft", wantStatus: http.StatusBadRequest, wantKind: "validation"},
		{name: "edits without track", method: http.MethodPut, path: "/api/session/edits", body: api.EditsRequest{Draft: "1. x"}, wantStatus: http.StatusBadRequest, wantKind: "validation"},
		{name: "export unsupported", load: input, method: http.MethodPost, path: "/api/session/export", body: api.ExportRequest{Path: filepath.Join(dir, "out.txt")}, wantStatus: http.StatusUnsupportedMediaType, wantKind: "unsupported"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, cfg, tt.translator)
			if tt.load != "" {
				if code := doJSON(t, ts, http.MethodPost, "/api/session/load", api.LoadRequest{Path: tt.load}, nil); code != http.StatusOK {
					t.Fatalf("load: expected 200, got %d", code)
				}
			}
			var resp api.ErrorResponse
			if code := doJSON(t, ts, tt.method, tt.path, tt.body, &resp); code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d (%+v)", tt.wantStatus, code, resp)
			}
			if resp.Kind != tt.wantKind || resp.Error == "" {
				t.Fatalf("unexpected error response: %+v", resp)
			}
		})
	}
}

func TestTranslateFailureKeepsCompletedCues(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	input := testsupport.WriteFile(t, testsupport.BaseDir(cfg), "movie.srt", testsupport.SampleSRT)
	ts := newTestServer(t, cfg, &testsupport.StubTranslator{Fail: "How are you?"})

	doJSON(t, ts, http.MethodPost, "/api/session/load", api.LoadRequest{Path: input}, nil)
	doJSON(t, ts, http.MethodPost, "/api/session/translate", nil, nil)

	var state api.SessionResponse
	doJSON(t, ts, http.MethodGet, "/api/session", nil, &state)
	if state.Session.State != session.StateLoaded {
		t.Fatalf("expected loaded state after failure, got %q", state.Session.State)
	}
	if state.Cues[0].Translation == nil || state.Cues[1].Translation != nil || state.Cues[2].Translation != nil {
		t.Fatalf("expected only the first cue translated, got %+v", state.Cues)
	}
}

func TestBodyLimit(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Server.MaxBodyBytes = 64
	ts := newTestServer(t, cfg, nil)

	var resp api.ErrorResponse
	body := api.EditsRequest{Draft: strings.Repeat("x", 256)}
	if code := doJSON(t, ts, http.MethodPut, "/api/session/edits", body, &resp); code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d (%+v)", code, resp)
	}
}

func TestCrossOriginPlainTextRequestRejected(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ts := newTestServer(t, cfg, nil)
	dir := t.TempDir()
	input := testsupport.WriteFile(t, dir, "private.srt", testsupport.SampleSRT)
	victim := testsupport.WriteFile(t, dir, "other.srt", "1\n00:00:01,000 --> 00:00:02,000\nkeep me\n")

	send := func(path, body string) *http.Response {
		t.Helper()
		req, err := http.NewRequest(http.MethodPost, ts.URL+path, strings.NewReader(body))
		if err != nil {
			t.Fatalf("new request: %v", err)
		}
		req.Header.Set("Content-Type", "text/plain")
		req.Header.Set("Origin", "https://evil.example")
		resp, err := ts.Client().Do(req)
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		t.Cleanup(func() { resp.Body.Close() })
		return resp
	}

	resp := send("/api/session/load", `{"path":"`+input+`"}`)
	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415 for load, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no allowed origin, got %q", got)
	}
	if resp := send("/api/session/export", `{"path":"`+victim+`"}`); resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415 for export, got %d", resp.StatusCode)
	}
	if !strings.Contains(testsupport.ReadFile(t, victim), "keep me") {
		t.Fatal("expected victim file to be untouched")
	}

	var summary api.SessionResponse
	if code := doJSON(t, ts, http.MethodGet, "/api/session", nil, &summary); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if len(summary.Cues) != 0 {
		t.Fatalf("expected no cues loaded, got %d", len(summary.Cues))
	}
}

func TestBearerToken(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithServerToken("s3cret"))
	ts := newTestServer(t, cfg, nil)

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{name: "health is public", path: "/api/health", want: http.StatusOK},
		{name: "missing token", path: "/api/session", want: http.StatusUnauthorized},
		{name: "wrong token", path: "/api/session", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "wrong scheme", path: "/api/session", header: "Basic s3cret", want: http.StatusUnauthorized},
		{name: "valid token", path: "/api/session", header: "Bearer s3cret", want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, ts.URL+tt.path, nil)
			if err != nil {
				t.Fatalf("new request: %v", err)
			}
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := ts.Client().Do(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, resp.StatusCode)
			}
		})
	}
}

func TestUnknownRouteAndMethod(t *testing.T) {
	ts := newTestServer(t, testsupport.NewConfig(t), nil)

	var resp api.ErrorResponse
	if code := doJSON(t, ts, http.MethodGet, "/api/nope", nil, &resp); code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
	if code := doJSON(t, ts, http.MethodDelete, "/api/session", nil, &resp); code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	ts := newTestServer(t, testsupport.NewConfig(t), nil)

	resp, err := ts.Client().Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("get health: %v", err)
	}
	resp.Body.Close()
	if resp.Header.Get("X-Request-Id") == "" {
		t.Fatal("expected X-Request-Id header")
	}
}

func TestStartAndStop(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	srv := api.New(cfg, nil, logging.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := srv.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer srv.Stop()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + srv.Addr() + "/api/health")
	if err != nil {
		t.Fatalf("get health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
