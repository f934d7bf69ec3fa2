// Package config loads application configuration from environment
// variables into tagged structs, with optional .env file support.
//
// Configuration is cached per struct type so every package that loads
// the same config type observes identical values. Absent optional
// settings (SMTP credentials, VAPID keys) are valid configurations;
// the consuming services degrade gracefully.
package config
