// Package seed loads a catalogue file and upserts it into the menu store.
//
// A seed file is gzipped JSON lines, one menu item per line:
//
//	{"id":"1","name":"Chicken Handi Biryani","category":"Biryani","price":450,"rating":4.9}
package seed

import (
	"context"
)

// Loader reads a seed file into a Catalog.
type Loader interface {
	// Load reads the gzipped seed file at path.
	Load(ctx context.Context, path string) (*Catalog, error)
}
