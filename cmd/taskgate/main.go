// ABOUTME: Entry point for the taskgate server
// ABOUTME: Subcommands: serve, init, bootstrap, health

package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/taskgate/taskgate/internal/api"
	"github.com/taskgate/taskgate/internal/auth"
	"github.com/taskgate/taskgate/internal/config"
	"github.com/taskgate/taskgate/internal/metrics"
	"github.com/taskgate/taskgate/internal/store"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
 _            _                _
| |_ __ _ ___| | ____ _  __ _| |_ ___
| __/ _' / __| |/ / _' |/ _' | __/ _ \
| || (_| \__ \   < (_| | (_| | ||  __/
 \__\__,_|___/_|\_\__, |\__,_|\__\___|
                  |___/
`

// getConfigPath returns the path to the taskgate config file.
// Priority: TASKGATE_CONFIG env var > XDG_CONFIG_HOME/taskgate/taskgate.yaml > ~/.config/taskgate/taskgate.yaml
func getConfigPath() string {
	if envPath := os.Getenv("TASKGATE_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "taskgate.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "taskgate", "taskgate.yaml")
}

// getDataPath returns the path to the taskgate data directory.
func getDataPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "data" // fallback
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return filepath.Join(dataDir, "taskgate")
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: taskgate <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  serve                        Start the API server")
		fmt.Println("  init                         Create a config file with a fresh signing secret")
		fmt.Println("  bootstrap --name N --email E Create the initial admin account and print a token")
		fmt.Println("  health                       Check server health")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "init":
		err = runInit()
	case "bootstrap":
		err = runBootstrap(ctx)
	case "health":
		err = runHealth(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	configPath := getConfigPath()

	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := setupLogger(cfg.Logging)
	slog.SetDefault(logger)

	green := color.New(color.FgGreen)
	green.Print("    ▶ ")
	fmt.Printf("Config:   %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("HTTP:     %s\n", cfg.Server.HTTPAddr)
	green.Print("    ▶ ")
	fmt.Printf("Database: %s\n", cfg.Database.Path)
	if cfg.Metrics.Enabled {
		green.Print("    ▶ ")
		fmt.Printf("Metrics:  %s\n", cfg.Metrics.Path)
	}
	fmt.Println()

	logger.Info("starting taskgate",
		"config", configPath,
		"http_addr", cfg.Server.HTTPAddr,
	)

	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	tokens, err := auth.NewJWTVerifier([]byte(cfg.Auth.JWTSecret))
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}

	var recorder metrics.Recorder = metrics.Nop{}
	registry := prometheus.NewRegistry()
	if cfg.Metrics.Enabled {
		recorder = metrics.NewCollector(registry)
	}

	a := api.New(st, tokens, recorder, api.Options{
		LoginPerMinute: cfg.RateLimit.LoginPerMinute,
		LoginBurst:     cfg.RateLimit.LoginBurst,
	})

	mux := http.NewServeMux()
	mux.Handle("/", a.Handler())
	if cfg.Metrics.Enabled {
		mux.Handle("GET "+cfg.Metrics.Path, metrics.Handler(registry))
	}

	srv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

// runInit writes a starter config file with a freshly generated signing
// secret. It refuses to overwrite an existing file.
func runInit() error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config already exists at %s", configPath)
	}

	secret, err := randomSecret()
	if err != nil {
		return err
	}

	dbPath := filepath.Join(getDataPath(), "taskgate.db")
	content := fmt.Sprintf(`server:
  http_addr: ":8080"

database:
  path: %q

auth:
  jwt_secret: %q

logging:
  level: "info"
  format: "text"

metrics:
  enabled: true
  path: "/metrics"

ratelimit:
  login_per_minute: 30
  login_burst: 10
`, dbPath, secret)

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Print("✓ ")
	fmt.Printf("Created %s\n", configPath)
	return nil
}

// runBootstrap creates the initial admin account and prints an access token
// for it. The config file must exist (run init first).
func runBootstrap(ctx context.Context) error {
	fs := flag.NewFlagSet("bootstrap", flag.ContinueOnError)
	name := fs.String("name", "", "display name for the admin account")
	email := fs.String("email", "", "email for the admin account")
	password := fs.String("password", "", "password for the admin account")
	if err := fs.Parse(os.Args[2:]); err != nil {
		return err
	}
	if *name == "" || *email == "" || *password == "" {
		return fmt.Errorf("--name, --email, and --password are required")
	}

	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	hash, err := auth.HashPassword(*password)
	if err != nil {
		return err
	}

	user := &store.User{
		Name:         *name,
		Email:        *email,
		PasswordHash: hash,
		Role:         auth.RoleAdmin,
	}
	if err := st.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return fmt.Errorf("an account with email %s already exists", *email)
		}
		return fmt.Errorf("creating admin account: %w", err)
	}

	tokens, err := auth.NewJWTVerifier([]byte(cfg.Auth.JWTSecret))
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	token, err := tokens.Issue(user.ID, user.Role)
	if err != nil {
		return fmt.Errorf("issuing token: %w", err)
	}

	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)
	green.Print("✓ ")
	fmt.Printf("Admin account created (id %d)\n\n", user.ID)
	fmt.Print("  Token: ")
	cyan.Println(token)
	fmt.Println("\n  The token expires in one hour; log in with the account credentials for a fresh one.")
	return nil
}

func runHealth(ctx context.Context) error {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	url := fmt.Sprintf("http://%s/healthz", cfg.Server.HTTPAddr)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: status %d", resp.StatusCode)
	}

	fmt.Println("healthy")
	return nil
}

func randomSecret() (string, error) {
	secretBytes := make([]byte, 32)
	if _, err := rand.Read(secretBytes); err != nil {
		return "", fmt.Errorf("generating signing secret: %w", err)
	}
	return base64.StdEncoding.EncodeToString(secretBytes), nil
}
