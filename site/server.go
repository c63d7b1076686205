// Package main provides a simple static file server for local testing of the web build.
package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fatih/color"

	"github.com/f4ah6o/webserve-go/internal/config"
	"github.com/f4ah6o/webserve-go/internal/mimetype"
	"github.com/f4ah6o/webserve-go/internal/server"
)

func main() {
	port := flag.Int("port", config.DefaultPort, "Port to serve on")
	dir := flag.String("dir", ".", "Directory to serve")
	configPath := flag.String("config", "", "Optional TOML or YAML config file")
	flag.Parse()

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg, err := resolveConfig(*configPath, set, *port, *dir)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	types := mimetype.NewTable(cfg.Types...)
	srv, err := server.New(cfg, types)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	color.New(color.FgGreen, color.Bold).Printf("🌐 Serving at %s\n", servingURL(srv.URL(), cfg.Root))
	log.Printf("Serving files from: %s", cfg.Root)
	for _, o := range types.Overrides() {
		log.Printf("  %-6s -> %s", o.Suffix, o.ContentType)
	}
	fmt.Println("Press Ctrl+C to stop")

	if err := srv.Serve(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// resolveConfig layers explicitly set flags over the config file (if any)
// over the defaults, and returns a validated config with an absolute root.
func resolveConfig(configPath string, set map[string]bool, port int, dir string) (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if set["port"] {
		host, _, err := net.SplitHostPort(cfg.Addr)
		if err != nil {
			return cfg, fmt.Errorf("invalid address %q: %w", cfg.Addr, err)
		}
		cfg.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	}
	if set["dir"] {
		cfg.Root = dir
	}

	absDir, err := filepath.Abs(cfg.Root)
	if err != nil {
		return cfg, fmt.Errorf("failed to resolve directory: %w", err)
	}
	cfg.Root = absDir

	return cfg, cfg.Validate()
}

// servingURL points at web/ when the root holds a web build there.
func servingURL(baseURL, root string) string {
	if info, err := os.Stat(filepath.Join(root, "web")); err == nil && info.IsDir() {
		return baseURL + "web/"
	}
	return baseURL
}
