// Package config loads the pitchdeck client configuration.
//
// # Resolution
//
// Load reads an optional TOML file through viper:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/pitchdeck/config.toml
//  3. If the file doesn't exist, every key takes its default
//  4. PITCHDECK_API_URL, when set, overrides api_url
//
// Empty or whitespace-only values fall back to the defaults as well.
//
// # Keys
//
//	api_url = "http://127.0.0.1:8000"          # Generation Service base URL
//	download_dir = "~/Downloads"               # where documents are saved
//	log_file = "~/.local/state/pitchdeck/pitchdeck.log"
//	log_level = "info"
//	request_timeout = "0s"                     # 0 disables the timeout
//
// Tilde expansion is applied to download_dir and log_file.
//
// # Errors
//
// Load fails when the file exists but cannot be read or parsed, or when
// request_timeout is not a non-negative duration. A missing file is not an
// error.
//
// The returned Config is a plain value; nothing in this package keeps global
// state, and the viper instance is discarded after Load returns.
package config
