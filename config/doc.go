// Package config handles loading of the filter's settings from defaults, an
// optional YAML file, a .env file and environment variables. It defines the
// providers file location, the probe timeouts and method, and logging options.
package config
