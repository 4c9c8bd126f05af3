// Package config defines the application's configuration structure and
// loading logic. Values come from defaults, an optional config.yaml in the
// working directory, and ACCOUNT_-prefixed environment variables, with the
// environment taking precedence.
package config
