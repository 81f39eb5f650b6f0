package lspclient

import "testing"

func TestDefaultsForKnownLanguages(t *testing.T) {
	cases := map[string]string{
		"rust":       "rust-analyzer",
		"python":     "pyright-langserver",
		"typescript": "typescript-language-server",
		"javascript": "typescript-language-server",
		"go":         "gopls",
		"sysml":      "syster-lsp",
		"kerml":      "syster-lsp",
	}

	for language, wantCommand := range cases {
		cfg := DefaultsFor(language, "/repo")
		if cfg.Command != wantCommand {
			t.Errorf("DefaultsFor(%q).Command = %q, want %q", language, cfg.Command, wantCommand)
		}

		if cfg.RootPath != "/repo" {
			t.Errorf("DefaultsFor(%q).RootPath = %q, want /repo", language, cfg.RootPath)
		}
	}
}

func TestDefaultsForPythonUsesStdioFlag(t *testing.T) {
	cfg := DefaultsFor("python", "/repo")

	if len(cfg.Args) != 1 || cfg.Args[0] != "--stdio" {
		t.Fatalf("expected --stdio arg, got %v", cfg.Args)
	}
}

func TestDefaultsForUnknownLanguageFallsBackToConvention(t *testing.T) {
	cfg := DefaultsFor("cobol", "/repo")

	if cfg.Command != "cobol-language-server" {
		t.Fatalf("unexpected fallback command: %q", cfg.Command)
	}
}

func TestRegisterServerOverridesDefaults(t *testing.T) {
	m := NewManager("/repo", nil)
	m.RegisterServer(ServerConfig{Language: "rust", Command: "custom-rust-analyzer", RootPath: "/repo"})

	m.mu.Lock()
	cfg, ok := m.customConfigs["rust"]
	m.mu.Unlock()

	if !ok || cfg.Command != "custom-rust-analyzer" {
		t.Fatalf("expected custom config to be registered, got %+v ok=%v", cfg, ok)
	}
}
