// Package configs defines the fixed project layout Sprout manages and the
// TOML marker it writes on first initialization.
//
// The layout (which files are seeded from which templates, which directory
// holds key material, which environment labels exist) is a compiled-in
// constant: Sprout deliberately has no configuration surface of its own.
// The .sprout/config.toml marker records that a project was bootstrapped;
// it is informational and never consulted when deciding what to seed.
package configs
