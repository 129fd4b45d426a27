package ports

import "proto2ros/internal/types"

// InterfaceDocPort discovers and extracts interface description documents.
type InterfaceDocPort interface {
	// Discover returns every document under roots, sorted.
	Discover(roots []string) ([]string, error)

	// Extract performs the shallow scan of one document for topic/event
	// and rpc declarations.
	Extract(path string) (types.InterfaceDocument, error)
}

// ProjectFilterPort loads the optional project allow-list.
type ProjectFilterPort interface {
	LoadProjects(path string) ([]string, error)
}
