// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/proceedings-engine/internal/pipeline"
	"github.com/pdiddy/proceedings-engine/internal/secrets"
	"github.com/pdiddy/proceedings-engine/pkg/types"
)

func TestLoadConfigEnvironmentAndSecrets(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("PROCEEDINGS_EVENT_NAME", "CFT2023")
	t.Setenv("PROCEEDINGS_BOOKLET_VOLUMES", "3")

	if err := setDefaults(types.DefaultConfig()); err != nil {
		t.Fatalf("setDefaults: %v", err)
	}
	viper.SetEnvPrefix("PROCEEDINGS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	loadedSecrets = map[string]string{secrets.S3AccessKeyID: "AKIA", secrets.LedgerDSN: "postgres://x"}
	t.Cleanup(func() { loadedSecrets = nil })

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Event.Name != "CFT2023" {
		t.Errorf("event name = %q, want CFT2023", cfg.Event.Name)
	}
	if cfg.Booklet.Volumes != 3 {
		t.Errorf("volumes = %d, want 3", cfg.Booklet.Volumes)
	}
	if cfg.Event.DOIPrefix != "10.25855" {
		t.Errorf("doi prefix = %q, want the default", cfg.Event.DOIPrefix)
	}
	if cfg.Publish.AccessKeyID != "AKIA" || cfg.Ledger.DSN != "postgres://x" {
		t.Errorf("secrets not applied: %+v %+v", cfg.Publish, cfg.Ledger)
	}
}

func TestRenderReport(t *testing.T) {
	out := renderReport(pipeline.Report{Stages: []pipeline.StageResult{
		{Name: "abstracts", Result: types.BatchResult{Done: 2, Skipped: 1}, Duration: 1500 * time.Millisecond},
		{Name: "html", Result: types.BatchResult{Failed: 1}},
		{Name: "xml", Err: errors.New("boom")},
	}})
	for _, want := range []string{"abstracts", "1.5s", "failures", "error"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestStatusLine(t *testing.T) {
	plain := statusLine("Pandoc", statusOK, "/usr/bin/pandoc", false)
	if !strings.Contains(plain, "Pandoc:") || !strings.Contains(plain, "[OK] /usr/bin/pandoc") {
		t.Errorf("plain line = %q", plain)
	}
	colored := statusLine("Pandoc", statusError, "", true)
	if !strings.HasPrefix(colored, ansiRed) || !strings.HasSuffix(colored, ansiReset) {
		t.Errorf("colored line = %q", colored)
	}
}
