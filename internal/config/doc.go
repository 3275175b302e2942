// Package config loads spacedlist settings.
//
// Settings come from three layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Command Line Flags      │  ← applied by cmd/spacedlist
//	├─────────────────────────────┤
//	│  2. Environment Variables   │  ← SPACEDLIST_*
//	├─────────────────────────────┤
//	│  1. TOML File or Defaults   │
//	└─────────────────────────────┘
//
// A config file looks like:
//
//	[log]
//	level = "debug"
//	format = "json"
//
//	[script]
//	path = "demo.lua"
//	call_limit = 1000000
//	watch = true
//	bias = "right"
//
//	[view]
//	enabled = true
//	width = 80
//	scale = 1
//
// Unknown keys are rejected so typos surface as errors instead of silently
// falling back to defaults.
package config
