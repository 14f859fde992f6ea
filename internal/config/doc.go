// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/typeset/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/typeset/config.cue on macOS, %APPDATA%\typeset\config.cue
// on Windows), falling back to ./config.cue. It covers layout settings (concurrency, page
// width, font size) and UI settings.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
