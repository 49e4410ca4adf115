package app

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadConfigFile_YAML(t *testing.T) {
	p := writeFile(t, "buywise.yaml", `
platform: Flipkart
outputPDF: report.pdf
llm:
  base: http://localhost:8081/v1
  model: stub-model
  key: secret
session:
  dir: /tmp/buywise
server:
  addr: ":9090"
verbose: true
`)
	fc, err := LoadConfigFile(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if fc.Platform != "Flipkart" || fc.LLM.Model != "stub-model" || fc.Session.Dir != "/tmp/buywise" || fc.Server.Addr != ":9090" || !fc.Verbose {
		t.Fatalf("unexpected config: %+v", fc)
	}
}

func TestLoadConfigFile_JSON(t *testing.T) {
	p := writeFile(t, "buywise.json", `{"llm": {"model": "m1"}, "platform": "Croma"}`)
	fc, err := LoadConfigFile(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if fc.LLM.Model != "m1" || fc.Platform != "Croma" {
		t.Fatalf("unexpected config: %+v", fc)
	}
}

func TestApplyFileConfig_FlagsWin(t *testing.T) {
	cfg := Config{LLMModel: "from-flag", Platform: ""}
	fc := FileConfig{}
	fc.LLM.Model = "from-file"
	fc.Platform = "Amazon"
	fc.Session.Dir = "/tmp/x"

	ApplyFileConfig(&cfg, fc)
	if cfg.LLMModel != "from-flag" {
		t.Fatalf("explicit flag overridden: %q", cfg.LLMModel)
	}
	if cfg.Platform != "Amazon" || cfg.SessionDir != "/tmp/x" {
		t.Fatalf("file defaults not applied: %+v", cfg)
	}
}

func TestApplyFileConfig_OverridesFlagDefaults(t *testing.T) {
	// Flags left at their non-zero defaults must still yield to file config.
	cfg := Config{Platform: "All", ListenAddr: ":8080"}
	fc := FileConfig{Platform: "Flipkart"}
	fc.Server.Addr = ":9090"

	ApplyFileConfig(&cfg, fc)
	if cfg.Platform != "Flipkart" {
		t.Fatalf("config-file platform ignored: got %q", cfg.Platform)
	}
	if cfg.ListenAddr != ":9090" {
		t.Fatalf("config-file addr ignored: got %q", cfg.ListenAddr)
	}

	// An explicit non-default flag still wins.
	cfg = Config{Platform: "Croma", ListenAddr: ":7000"}
	ApplyFileConfig(&cfg, fc)
	if cfg.Platform != "Croma" || cfg.ListenAddr != ":7000" {
		t.Fatalf("explicit flags overridden: %+v", cfg)
	}
}

func TestValidateConfig(t *testing.T) {
	if err := ValidateConfig(Config{}); err == nil {
		t.Fatal("missing model must fail validation")
	}
	if err := ValidateConfig(Config{LLMModel: "m"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
