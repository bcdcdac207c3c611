// Package config provides configuration structures and utilities for
// the hack-or-snooze client. It defines the API endpoint settings,
// output format preferences, and story cache options, and layers
// values from the config file and environment over the defaults.
package config
