// Package config loads, normalizes, and validates loggingtalk configuration.
//
// Settings come from a TOML file (LOGGINGTALK_CONFIG, or loggingtalk.toml in
// the working directory). A missing file is not an error: every field has a
// default, so the demo runs without any configuration at all.
package config
