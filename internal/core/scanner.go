package core

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"proto2ros/internal/ports"
	"proto2ros/internal/types"
)

// BlankComments replaces line and block comments with spaces, keeping every
// byte offset and newline in place. String literals are left untouched.
func BlankComments(text string) string {
	out := []byte(text)
	for i := 0; i < len(out); i++ {
		switch {
		case out[i] == '"' || out[i] == '\'':
			i = skipString(text, i)
		case out[i] == '/' && i+1 < len(out) && out[i+1] == '/':
			for i < len(out) && out[i] != '\n' {
				out[i] = ' '
				i++
			}
		case out[i] == '/' && i+1 < len(out) && out[i+1] == '*':
			j := i
			for ; j < len(out); j++ {
				if j > i+2 && text[j-1] == '*' && text[j] == '/' {
					out[j] = ' '
					break
				}
				if out[j] != '\n' {
					out[j] = ' '
				}
			}
			i = j
		}
	}
	return string(out)
}

// skipString returns the index of the quote closing the literal opened at
// start, or the last index when the literal is unterminated.
func skipString(text string, start int) int {
	quote := text[start]
	for i := start + 1; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case quote:
			return i
		case '\n':
			return i
		}
	}
	return len(text) - 1
}

// MatchBrace scans forward from start and returns the index just past the
// brace that closes the first '{' found. Braces inside string literals are
// ignored; comments must already be blanked.
func MatchBrace(text string, start int) (int, bool) {
	var stack []int
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '"', '\'':
			i = skipString(text, i)
		case '{':
			stack = append(stack, i)
		case '}':
			if len(stack) == 0 {
				continue
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i + 1, true
			}
		}
	}
	return len(text), false
}

var (
	headerMu    sync.Mutex
	headerCache = map[string]*regexp.Regexp{}
)

func headerPattern(kind types.BlockKind, name string) *regexp.Regexp {
	key := string(kind) + " " + name
	headerMu.Lock()
	defer headerMu.Unlock()
	if re, ok := headerCache[key]; ok {
		return re
	}
	re := regexp.MustCompile(`\b` + string(kind) + `\s+` + regexp.QuoteMeta(name) + `\s*\{`)
	headerCache[key] = re
	return re
}

// FindBlock returns the first `kind Name {...}` block of text, with
// comments blanked. Unterminated blocks are ignored.
func FindBlock(text string, kind types.BlockKind, name string) (string, bool) {
	clean := BlankComments(text)
	for _, loc := range headerPattern(kind, name).FindAllStringIndex(clean, -1) {
		end, ok := MatchBrace(clean, loc[0])
		if !ok {
			continue
		}
		return clean[loc[0]:end], true
	}
	return "", false
}

// ScanFilter narrows the files a scan considers.
type ScanFilter struct {
	// PathContains is a lower-case slash path that must appear in the
	// corpus-relative file path.
	PathContains string
	// DirSegments, when set, requires one of the file's directories to
	// carry one of these names.
	DirSegments []string
}

func (f ScanFilter) Matches(file types.CorpusFile) bool {
	rel := strings.ToLower(file.Path)
	if f.PathContains != "" && !strings.Contains(rel, f.PathContains) {
		return false
	}
	if len(f.DirSegments) == 0 {
		return true
	}
	dirs := strings.Split(rel, "/")
	dirs = dirs[:len(dirs)-1]
	for _, dir := range dirs {
		for _, want := range f.DirSegments {
			if dir == strings.ToLower(want) {
				return true
			}
		}
	}
	return false
}

// BlockScanner locates named blocks in a schema corpus. Every lookup
// rescans the corpus; the first match in traversal order wins.
type BlockScanner struct {
	Corpus ports.SchemaCorpusPort
}

func NewBlockScanner(corpus ports.SchemaCorpusPort) BlockScanner {
	return BlockScanner{Corpus: corpus}
}

// Find returns the first block named name of the given kind among files
// accepted by filter. Unreadable files are skipped.
func (s BlockScanner) Find(ctx context.Context, kind types.BlockKind, name string, filter ScanFilter) (types.SchemaBlock, bool) {
	files, err := s.Corpus.Files()
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Msg("schema corpus listing failed")
		return types.SchemaBlock{}, false
	}
	for _, file := range files {
		if !filter.Matches(file) {
			continue
		}
		if block, ok := s.FindInFile(ctx, file, kind, name); ok {
			return block, true
		}
	}
	return types.SchemaBlock{}, false
}

// FindInFile looks for the block in a single corpus file.
func (s BlockScanner) FindInFile(ctx context.Context, file types.CorpusFile, kind types.BlockKind, name string) (types.SchemaBlock, bool) {
	text, err := s.Corpus.Read(file)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Str("file", file.ID()).Msg("skipping unreadable schema file")
		return types.SchemaBlock{}, false
	}
	raw, ok := FindBlock(text, kind, name)
	if !ok {
		return types.SchemaBlock{}, false
	}
	return types.SchemaBlock{
		Name:       name,
		Kind:       kind,
		RawText:    raw,
		OriginFile: file,
	}, true
}
