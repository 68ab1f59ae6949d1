// Package config loads relfetch settings.
//
// Settings are layered, highest precedence first:
//
//  1. command line flags bound with Load
//  2. environment variables prefixed RELFETCH_ (RELFETCH_GITHUB_TOKEN,
//     RELFETCH_INSTALL_DIR, ...); GITHUB_TOKEN is honored as well
//  3. the YAML config file, by default $XDG_CONFIG_HOME/relfetch/config.yaml
//  4. built-in defaults
//
// A missing default config file is not an error. An explicitly named one
// must exist.
//
// Example config.yaml:
//
//	github_token: ghp_xxx
//	install_dir: ~/.local/bin
//	select_script: ~/.config/relfetch/select.lua
//	debug: false
package config
