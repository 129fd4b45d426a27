package types

import (
	"path"
	"strings"

	"google.golang.org/protobuf/reflect/protoreflect"
)

// CorpusFile identifies one file of a schema corpus. Path is relative to
// Root and always uses forward slashes so hint filters behave the same on
// every platform.
type CorpusFile struct {
	Root string
	Path string
}

// ID is the stable identity of the file across a run.
func (f CorpusFile) ID() string {
	if f.Root == "" {
		return f.Path
	}
	return strings.TrimSuffix(f.Root, "/") + "/" + f.Path
}

// Stem returns the base file name without extension ("hmi_seat" for
// "sdv/hmi/hmi_seat.proto").
func (f CorpusFile) Stem() string {
	base := path.Base(f.Path)
	return strings.TrimSuffix(base, path.Ext(base))
}

// SchemaBlock is one message, enum or service definition located in a
// schema corpus. RawText spans from the keyword up to and including the
// matching close brace. Blocks are never cached between lookups.
type SchemaBlock struct {
	Name       string
	Kind       BlockKind
	RawText    string
	OriginFile CorpusFile
}

func (b SchemaBlock) Found() bool {
	return b.RawText != ""
}

// OriginHint is the owning hint recorded in the registry for anything
// generated from this block: the stem of the file that defines it.
func (b SchemaBlock) OriginHint() string {
	return b.OriginFile.Stem()
}

// ContextHint is the ordered list of path segments derived from a
// fully-qualified name ("a.b.c.Type" yields [a b c]). An empty hint means
// an unconstrained search.
type ContextHint []string

func (h ContextHint) Empty() bool {
	return len(h) == 0
}

// Prefix returns the first n segments of the hint.
func (h ContextHint) Prefix(n int) ContextHint {
	if n <= 0 {
		return nil
	}
	if n >= len(h) {
		return h
	}
	return h[:n]
}

// PathFilter renders the hint as a slash path used as a substring filter
// over corpus-relative file paths.
func (h ContextHint) PathFilter() string {
	return strings.ToLower(strings.Join(h, "/"))
}

func (h ContextHint) String() string {
	return strings.Join(h, ".")
}

// SplitFullName splits a fully-qualified type or topic name into its hint
// (every segment but the last) and its bare name.
func SplitFullName(name string) (ContextHint, string) {
	trimmed := strings.Trim(strings.TrimSpace(name), ".")
	if trimmed == "" {
		return nil, ""
	}
	full := protoreflect.FullName(trimmed)
	if full.IsValid() {
		parent := full.Parent()
		if parent == "" {
			return nil, string(full.Name())
		}
		return ContextHint(strings.Split(string(parent), ".")), string(full.Name())
	}
	var parts []string
	for _, part := range strings.Split(trimmed, ".") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return nil, ""
	}
	if len(parts) == 1 {
		return nil, parts[0]
	}
	return ContextHint(parts[:len(parts)-1]), parts[len(parts)-1]
}
