// Package config loads typed configuration structs from environment
// variables, optionally seeded from a .env file.
//
// Each package that needs configuration declares its own Config struct with
// `env` tags and loads it through config.Load, keeping configuration local
// to the component that consumes it.
package config
