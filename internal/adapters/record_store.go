package adapters

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/afero"

	"proto2ros/internal/ports"
	"proto2ros/internal/types"
)

// RecordStoreAdapter keeps .msg records in MsgDir and .srv records in
// SrvDir.
type RecordStoreAdapter struct {
	Fs     afero.Fs
	MsgDir string
	SrvDir string
}

func NewRecordStoreAdapter(fs afero.Fs, msgDir string, srvDir string) RecordStoreAdapter {
	return RecordStoreAdapter{Fs: fs, MsgDir: msgDir, SrvDir: srvDir}
}

func (a RecordStoreAdapter) dir(kind types.RecordKind) string {
	if kind == types.RecordKindService {
		return a.SrvDir
	}
	return a.MsgDir
}

func (a RecordStoreAdapter) Write(rec types.OutputRecord) error {
	path, err := ensurePath(a.Fs, a.dir(rec.Kind), rec.FileName())
	if err != nil {
		return err
	}
	if err := afero.WriteFile(a.Fs, path, []byte(rec.Content()), 0o644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write record " + rec.FileName()).
			WithCause(err)
	}
	return nil
}

func (a RecordStoreAdapter) Remove(kind types.RecordKind, name string) error {
	dir := a.dir(kind)
	if dir == "" {
		return nil
	}
	err := a.Fs.Remove(filepath.Join(dir, name+kind.Extension()))
	if err != nil && !os.IsNotExist(err) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to remove record " + name + kind.Extension()).
			WithCause(err)
	}
	return nil
}

// Load reads every record of both directories, sorted by file name.
// Missing directories are treated as empty.
func (a RecordStoreAdapter) Load() (*types.RecordSet, error) {
	set := types.NewRecordSet()
	for _, kind := range []types.RecordKind{types.RecordKindMessage, types.RecordKindService} {
		dir := a.dir(kind)
		if dir == "" {
			continue
		}
		exists, err := afero.DirExists(a.Fs, dir)
		if err != nil || !exists {
			continue
		}
		entries, err := afero.ReadDir(a.Fs, dir)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to list records in " + dir).
				WithCause(err)
		}
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != kind.Extension() {
				continue
			}
			data, err := afero.ReadFile(a.Fs, filepath.Join(dir, entry.Name()))
			if err != nil {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("failed to read record " + entry.Name()).
					WithCause(err)
			}
			set.Put(types.OutputRecord{
				Name:  strings.TrimSuffix(entry.Name(), kind.Extension()),
				Kind:  kind,
				Lines: splitLines(string(data)),
			})
		}
	}
	return set, nil
}

func splitLines(content string) []string {
	content = strings.TrimRight(content, "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

func ensurePath(fs afero.Fs, dir string, filename string) (string, error) {
	if dir == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is empty")
	}
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	return filepath.Join(dir, filename), nil
}

var _ ports.RecordStorePort = RecordStoreAdapter{}
