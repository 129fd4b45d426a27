package core

import (
	"context"
	"os"
	"path"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"proto2ros/internal/types"
)

const memRoot = "/corpus"

// memCorpus serves schema files from an in-memory filesystem in walk order.
type memCorpus struct {
	fs afero.Fs
}

func newMemCorpus(t *testing.T, files map[string]string) memCorpus {
	t.Helper()
	fs := afero.NewMemMapFs()
	for rel, content := range files {
		full := path.Join(memRoot, rel)
		require.NoError(t, fs.MkdirAll(path.Dir(full), 0o755))
		require.NoError(t, afero.WriteFile(fs, full, []byte(content), 0o644))
	}
	return memCorpus{fs: fs}
}

func (c memCorpus) Files() ([]types.CorpusFile, error) {
	var files []types.CorpusFile
	err := afero.Walk(c.fs, memRoot, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || path.Ext(p) != ".proto" {
			return nil
		}
		files = append(files, types.CorpusFile{Root: memRoot, Path: p[len(memRoot)+1:]})
		return nil
	})
	return files, err
}

func (c memCorpus) Read(file types.CorpusFile) (string, error) {
	data, err := afero.ReadFile(c.fs, path.Join(file.Root, file.Path))
	return string(data), err
}

func testContext() context.Context {
	return zerolog.Nop().WithContext(context.Background())
}

func newTestTranslator(t *testing.T, files map[string]string) Translator {
	t.Helper()
	scanner := NewBlockScanner(newMemCorpus(t, files))
	return NewTranslator(NewHintResolver(scanner, []string{"msgs"}), "")
}

func recordLines(t *testing.T, tc *TranslationContext, kind types.RecordKind, name string) []string {
	t.Helper()
	rec, ok := tc.Records.Get(kind, name)
	require.Truef(t, ok, "record %s%s not emitted; have %v", name, kind.Extension(), tc.Records.Names(kind))
	return rec.Lines
}
