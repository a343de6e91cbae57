// Package engine holds the engine identity and the per-user directories it
// stores logs and configuration in.
package engine

import "fmt"

const (
	Name    = "Babylon"
	Version = "0.1.1"
	Author  = "JohnLesterDev"
)

// VersionText is printed by --version.
func VersionText() string {
	return fmt.Sprintf("%s v%s\nWritten by: %s\n", Name, Version, Author)
}
