// Package config resolves run settings from command-line overrides, the
// environment (optionally seeded from a .env file), synclean.yaml and
// built-in defaults.
package config
