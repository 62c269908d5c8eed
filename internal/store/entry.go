package store

import "time"

// Entry represents a cached installation
type Entry struct {
	// Tool is the tool name component of the key (e.g., "advinst")
	Tool string `json:"tool"`

	// Version is the normalized version component of the key
	Version string `json:"version"`

	// Architecture is the architecture component of the key (e.g., "x86")
	Architecture string `json:"architecture"`

	// Root is the absolute path of the installation directory
	Root string `json:"root"`

	// SavedAt is when this entry was committed
	SavedAt time.Time `json:"saved_at"`
}
