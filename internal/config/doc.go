// Package config loads, normalizes, and validates vynlassets configuration data.
//
// It supplies defaults that reproduce the fixed music-library and website
// layout, expands user paths (including tilde shortcuts), reads TOML files, and
// honours the VYNL_MUSIC_ROOT and VYNL_PUBLIC_DIR environment fallbacks. After
// Load returns, every path field is absolute: album sources are resolved
// against the discography directory and every destination against the public
// directory.
//
// Always obtain settings through this package so the copy commands receive
// sanitized paths and clear validation errors.
package config
