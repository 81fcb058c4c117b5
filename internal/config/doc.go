// Package config loads the songmatch client configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/songmatch/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing, empty or non-positive, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/songmatch/config.toml
//   - Server: 127.0.0.1:3000
//   - Per-attempt timeout: 5000 ms
//   - Catalogue page size: 14
//   - Catalogue refresh: every 10 seconds
//   - Log file: ~/.local/share/songmatch/songmatch.log
//   - Log level: info
//
// # TOML Format
//
//	server_url = "127.0.0.1:3000"
//	timeout_ms = 5000
//	page_limit = 14
//	poll_seconds = 10
//	log_file = "~/.local/share/songmatch/songmatch.log"
//	log_level = "info"
//
// Paths starting with "~" are expanded against the user's home directory and
// made absolute. Command-line flags override file values; see cmd/songmatch.
package config
