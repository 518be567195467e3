// Package config holds wallgrab's runtime configuration: defaults,
// CLI-populated settings, and the optional .wallgrab YAML file that
// carries per-site overrides such as the selector policy and request
// headers.
package config
