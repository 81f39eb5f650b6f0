package lspclient

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// DefaultsFor returns the default server launch configuration for a
// language, rooted at rootPath. Callers may override any field via
// Manager.RegisterServer before the server is first started.
func DefaultsFor(language, rootPath string) ServerConfig {
	switch language {
	case "rust":
		return ServerConfig{Language: language, Command: "rust-analyzer", RootPath: rootPath, LanguageID: "rust"}
	case "python":
		return ServerConfig{
			Language: language, Command: "pyright-langserver", Args: []string{"--stdio"},
			RootPath: rootPath, LanguageID: "python",
		}
	case "typescript":
		return ServerConfig{
			Language: language, Command: "typescript-language-server", Args: []string{"--stdio"},
			RootPath: rootPath, LanguageID: "typescript",
		}
	case "javascript":
		return ServerConfig{
			Language: language, Command: "typescript-language-server", Args: []string{"--stdio"},
			RootPath: rootPath, LanguageID: "javascript",
		}
	case "go":
		return ServerConfig{Language: language, Command: "gopls", RootPath: rootPath, LanguageID: "go"}
	case "sysml", "kerml":
		return ServerConfig{
			Language: language, Command: "syster-lsp", RootPath: rootPath, LanguageID: language,
			InitOptions: map[string]any{"stdlibEnabled": true},
		}
	default:
		return ServerConfig{Language: language, Command: language + "-language-server", RootPath: rootPath, LanguageID: language}
	}
}

// Manager lazily starts and caches one Client per language, so a scan never
// pays the startup/indexing cost for a language it does not need, and never
// starts the same server twice.
type Manager struct {
	mu            sync.Mutex
	rootPath      string
	logger        *slog.Logger
	clients       map[string]*Client
	customConfigs map[string]ServerConfig
}

// NewManager creates a Manager rooted at rootPath.
func NewManager(rootPath string, logger *slog.Logger) *Manager {
	return &Manager{
		rootPath:      rootPath,
		logger:        logger,
		clients:       make(map[string]*Client),
		customConfigs: make(map[string]ServerConfig),
	}
}

// RegisterServer overrides the launch configuration used for language,
// taking effect the next time that language's server is started.
func (m *Manager) RegisterServer(cfg ServerConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.customConfigs[cfg.Language] = cfg
}

// GetClient returns the live client for language, starting and initializing
// its server on first use.
func (m *Manager) GetClient(ctx context.Context, language string) (*Client, error) {
	m.mu.Lock()
	if client, ok := m.clients[language]; ok {
		m.mu.Unlock()
		return client, nil
	}

	cfg, hasCustom := m.customConfigs[language]
	if !hasCustom {
		cfg = DefaultsFor(language, m.rootPath)
	}
	m.mu.Unlock()

	client, err := Start(ctx, cfg, m.logger)
	if err != nil {
		return nil, fmt.Errorf("start lsp server for %s: %w", language, err)
	}

	rootURI := "file://" + m.rootPath

	if err := client.Initialize(ctx, rootURI); err != nil {
		return nil, fmt.Errorf("initialize lsp server for %s: %w", language, err)
	}

	if err := client.WaitForIndexing(ctx, DefaultIndexingTimeout); err != nil {
		return nil, fmt.Errorf("wait for indexing for %s: %w", language, err)
	}

	m.mu.Lock()
	m.clients[language] = client
	m.mu.Unlock()

	return client, nil
}

// ShutdownAll shuts down every live client. Individual shutdown failures
// are swallowed (best-effort), matching the orchestrator's "never block
// teardown on a single misbehaving server" policy.
func (m *Manager) ShutdownAll(ctx context.Context) {
	m.mu.Lock()
	clients := m.clients
	m.clients = make(map[string]*Client)
	m.mu.Unlock()

	for _, client := range clients {
		_ = client.Shutdown(ctx)
	}
}
