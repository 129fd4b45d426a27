package ports

import "proto2ros/internal/types"

// SchemaCorpusPort exposes the read-only schema corpus. Files must be
// returned in a deterministic order: roots in the order given, then
// lexicographic by relative path.
type SchemaCorpusPort interface {
	Files() ([]types.CorpusFile, error)
	Read(file types.CorpusFile) (string, error)
}
