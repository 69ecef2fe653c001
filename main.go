package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mdp/qrterminal/v3"
	"github.com/netwatch/server/logger"
	"github.com/netwatch/server/mcp"
	"github.com/netwatch/server/middleware"
	"github.com/netwatch/server/netmon"
	"github.com/netwatch/server/settings"
	"github.com/netwatch/server/watch"
	"github.com/netwatch/server/ws"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/term"
)

const version = "1.0.0"

func newHandler(token string, rpcHandler *ws.RPCHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	// WebSocket endpoint (handles its own auth via the auth RPC method)
	mux.Handle("GET /ws", rpcHandler)

	return middleware.Auth(token)(mux)
}

// printPairingInfo shows the connection URL, and a QR code when stdout
// is a terminal so a phone client can scan it.
func printPairingInfo(port, token string) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	url := fmt.Sprintf("ws://%s:%s/ws?token=%s", hostname, port, token)

	fmt.Printf("Pairing URL: %s\n", url)
	if term.IsTerminal(int(os.Stdout.Fd())) {
		qrterminal.GenerateHalfBlock(url, qrterminal.L, os.Stdout)
	}
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "mcp" {
		runMCP()
		return
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	token := os.Getenv("AUTH_TOKEN")
	if token == "" {
		log.Fatal("AUTH_TOKEN environment variable is required")
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "/var/lib/netwatch"
	}

	devMode := os.Getenv("DEV_MODE") == "true"

	logger.Init(logger.Config{DataDir: dataDir, DevMode: devMode})

	store, err := settings.NewStore(dataDir)
	if err != nil {
		log.Fatalf("Failed to initialize settings store: %v", err)
	}
	cfg := store.Get()

	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupGracefulShutdown(cancel)

	history := netmon.NewHistory(cfg.HistorySize)
	monitor := netmon.New(cfg.PollInterval())

	networkWatcher := watch.NewNetworkWatcher(monitor, history, cfg.Debounce())
	if err := networkWatcher.Start(); err != nil {
		log.Fatalf("Failed to start network watcher: %v", err)
	}
	defer networkWatcher.Stop()

	dnsWatcher := watch.NewDNSWatcher()
	if err := dnsWatcher.Start(); err != nil {
		log.Fatalf("Failed to start DNS watcher: %v", err)
	}
	defer dnsWatcher.Stop()

	// Debounce and history size follow settings.update without a
	// restart. The poll interval applies at boot only: the monitor is
	// built once.
	store.AddOnChangeListener(&settingsApplier{watcher: networkWatcher, history: history})

	rpcHandler := ws.NewRPCHandler(token, version, devMode, networkWatcher, dnsWatcher, store, history)
	defer rpcHandler.Stop()

	server := &http.Server{
		Addr:    ":" + port,
		Handler: newHandler(token, rpcHandler),
	}

	go func() {
		slog.Info("Server starting", "port", port, "backend", monitor.Backend(), "devMode", devMode)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	printPairingInfo(port, token)

	<-rootCtx.Done()
	slog.Info("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown failed", "error", err)
	}
}

// runMCP starts the stdio MCP server sharing the same data directory
// as the main server, so agents see the persisted settings.
func runMCP() {
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "/var/lib/netwatch"
	}

	// MCP speaks JSON-RPC on stdout; logs must go elsewhere.
	logger.Init(logger.Config{DataDir: dataDir})

	store, err := settings.NewStore(dataDir)
	if err != nil {
		log.Fatalf("Failed to initialize settings store: %v", err)
	}
	cfg := store.Get()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupGracefulShutdown(cancel)

	history := netmon.NewHistory(cfg.HistorySize)
	monitor := netmon.New(cfg.PollInterval())
	watcher := watch.NewNetworkWatcher(monitor, history, cfg.Debounce())
	if err := watcher.Start(); err != nil {
		slog.Warn("network monitoring unavailable, history will stay empty", "error", err)
	} else {
		defer watcher.Stop()
	}

	if err := mcp.NewServer(history, store).Run(ctx); err != nil {
		log.Fatalf("MCP server failed: %v", err)
	}
}

// settingsApplier re-applies runtime-tunable settings on store updates.
// It runs under the store mutex, so it must not block.
type settingsApplier struct {
	watcher *watch.NetworkWatcher
	history *netmon.History
}

func (a *settingsApplier) OnSettingsChange(s settings.Settings) {
	a.watcher.SetDebounce(s.Debounce())
	a.history.Resize(s.HistorySize)
}

func setupGracefulShutdown(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		slog.Info("Received signal, shutting down", "signal", sig.String())
		cancel()
	}()
}
