package adapters

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/ZanzyTHEbar/errbuilder-go"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/afero"

	"proto2ros/internal/ports"
	"proto2ros/internal/types"
)

// DefaultCorpusCacheSize bounds the number of schema files kept in memory
// between lookups.
const DefaultCorpusCacheSize = 256

// SchemaCorpusAdapter serves schema files from one or more roots in
// lexicographic walk order. Every lookup rescans the listing; file text is
// cached because the same files are read once per lookup.
type SchemaCorpusAdapter struct {
	Fs    afero.Fs
	Roots []string
	Ext   string

	once  sync.Once
	files []types.CorpusFile
	err   error
	cache *lru.Cache[string, string]
}

func NewSchemaCorpusAdapter(fs afero.Fs, roots []string, ext string, cacheSize int) (*SchemaCorpusAdapter, error) {
	if len(roots) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no schema corpus roots configured")
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCorpusCacheSize
	}
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create schema cache").
			WithCause(err)
	}
	if ext == "" {
		ext = ".proto"
	}
	return &SchemaCorpusAdapter{Fs: fs, Roots: roots, Ext: ext, cache: cache}, nil
}

// Files lists every schema file once per adapter; the corpus is read-only
// for the lifetime of a run.
func (a *SchemaCorpusAdapter) Files() ([]types.CorpusFile, error) {
	a.once.Do(func() {
		for _, root := range a.Roots {
			files, err := walkSorted(a.Fs, root, a.Ext)
			if err != nil {
				a.err = errbuilder.New().
					WithCode(errbuilder.CodeNotFound).
					WithMsg("failed to scan schema root " + root).
					WithCause(err)
				return
			}
			for _, rel := range files {
				a.files = append(a.files, types.CorpusFile{Root: root, Path: rel})
			}
		}
	})
	return a.files, a.err
}

func (a *SchemaCorpusAdapter) Read(file types.CorpusFile) (string, error) {
	key := file.ID()
	if text, ok := a.cache.Get(key); ok {
		return text, nil
	}
	data, err := afero.ReadFile(a.Fs, filepath.Join(file.Root, filepath.FromSlash(file.Path)))
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read schema file " + key).
			WithCause(err)
	}
	if !utf8.Valid(data) {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("schema file is not valid UTF-8: " + key)
	}
	text := string(data)
	a.cache.Add(key, text)
	return text, nil
}

// walkSorted returns the slash-separated paths below root whose extension
// is ext, in lexicographic walk order.
func walkSorted(fs afero.Fs, root string, ext string) ([]string, error) {
	var paths []string
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != root && shouldSkipDir(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ext) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

func shouldSkipDir(name string) bool {
	switch name {
	case ".git", "build", "install", "log", ".colcon":
		return true
	default:
		return false
	}
}

var _ ports.SchemaCorpusPort = (*SchemaCorpusAdapter)(nil)
