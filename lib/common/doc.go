// Package common provides core data structures and utilities shared across
// the portable settings packages. It defines the setting metadata and value
// types, the error type, the provider configuration and the logger setup.
//
// The package focuses on:
//   - Setting metadata (Declaration) and values (SettingValue) exchanged with the host
//   - A typed error with return codes used by every other package
//   - Configuration of a provider, including loading it from the environment
//   - Custom logging implementation integrated with Dragonboat's logger package
//
// Key Components:
//
//   - Declaration: Metadata of a named setting as supplied by the host: its
//     default value, how it is serialized and whether it is user scoped and
//     roaming. Declarations are plain data; the engine never inspects any
//     host specific structure.
//
//   - SettingValue: A declaration together with its serialized value and the
//     dirty and default flags the host uses to track changes.
//
//   - Error: Structured error with a RetCode, a message and an optional cause.
//     Errors compare equal under errors.Is when their codes match, so callers
//     can test against the exported sentinels (ErrNotSupported, ...).
//
//   - Config: Format, location and roaming behaviour of a provider. LoadConfig
//     reads it from PSETTINGS_* environment variables (and .env files).
//
//   - Logger: Custom logging implementation that plugs into Dragonboat's
//     logging system while providing consistent formatting across the module.
package common
