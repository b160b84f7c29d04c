// Package config loads and validates subtext configuration.
//
// Configuration lives in a TOML file, by default ~/.config/subtext/config.toml
// or ./subtext.toml in the working directory. Load applies defaults,
// normalizes and expands all path fields, and validates the result. The
// returned Config is treated as an immutable value passed into each pipeline
// call; nothing mutates it after load.
package config
