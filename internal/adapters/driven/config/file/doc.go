// Package file provides the file-based ConfigStore.
// Configuration lives in a TOML file, by default ~/.docprep/config.toml.
package file
