package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"subtrans/internal/config"
	"subtrans/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
	provider   *fakeProvider
}

// fakeProvider answers translate requests with "[target] text".
type fakeProvider struct {
	server *httptest.Server
	hits   atomic.Int64
	status atomic.Int32
}

func newFakeProvider(t *testing.T) *fakeProvider {
	t.Helper()
	p := &fakeProvider{}
	p.status.Store(http.StatusOK)
	p.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.hits.Add(1)
		if !strings.HasPrefix(r.Header.Get("Authorization"), "HMAC-SHA256 Credential=test-key,") {
			http.Error(w, "bad auth", http.StatusForbidden)
			return
		}
		if status := int(p.status.Load()); status != http.StatusOK {
			http.Error(w, "provider unavailable", status)
			return
		}
		var req struct {
			TargetLanguage string   `json:"TargetLanguage"`
			SourceLanguage string   `json:"SourceLanguage"`
			TextList       []string `json:"TextList"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.TextList) != 1 {
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ResponseMetadata": map[string]any{"RequestId": "req-1"},
			"TranslationList": []map[string]any{{
				"Translation":            fmt.Sprintf("[%s] %s", req.TargetLanguage, req.TextList[0]),
				"DetectedSourceLanguage": "en",
			}},
		})
	}))
	t.Cleanup(p.server.Close)
	return p
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	provider := newFakeProvider(t)
	opts = append([]testsupport.ConfigOption{testsupport.WithBaseURL(provider.server.URL)}, opts...)
	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "home"))

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)
	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    base,
		provider:   provider,
	}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
