package adapters

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/afero"

	"proto2ros/internal/ports"
	"proto2ros/internal/types"
)

const (
	ManifestJSONFile = "interfaces_manifest.json"
	ManifestCSVFile  = "interfaces_manifest.csv"
)

var manifestHeader = []string{"ros_filename", "topic_name", "event_name", "proto_file"}

type manifestRecord struct {
	ROSFilename string `json:"ros_filename"`
	TopicName   string `json:"topic_name"`
	EventName   string `json:"event_name"`
	ProtoFile   string `json:"proto_file"`
}

// ManifestFileAdapter exports the manifest as indented JSON and as CSV in
// Dir.
type ManifestFileAdapter struct {
	Fs  afero.Fs
	Dir string
}

func NewManifestFileAdapter(fs afero.Fs, dir string) ManifestFileAdapter {
	return ManifestFileAdapter{Fs: fs, Dir: dir}
}

func (a ManifestFileAdapter) WriteManifest(entries []types.ManifestEntry) error {
	records := make([]manifestRecord, 0, len(entries))
	for _, entry := range entries {
		records = append(records, manifestRecord{
			ROSFilename: entry.FileName(),
			TopicName:   entry.SourceTopic,
			EventName:   entry.EventName,
			ProtoFile:   entry.OriginHint,
		})
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode manifest json").
			WithCause(err)
	}
	if err := a.write(ManifestJSONFile, append(data, '\n')); err != nil {
		return err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	rows := [][]string{manifestHeader}
	for _, rec := range records {
		rows = append(rows, []string{rec.ROSFilename, rec.TopicName, rec.EventName, rec.ProtoFile})
	}
	if err := writer.WriteAll(rows); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode manifest csv").
			WithCause(err)
	}
	return a.write(ManifestCSVFile, buf.Bytes())
}

// ReadManifest loads a JSON manifest written by WriteManifest.
func (a ManifestFileAdapter) ReadManifest(path string) ([]types.ManifestEntry, error) {
	data, err := afero.ReadFile(a.Fs, path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("manifest not found: " + path).
			WithCause(err)
	}
	var records []manifestRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse manifest json").
			WithCause(err)
	}
	entries := make([]types.ManifestEntry, 0, len(records))
	for _, rec := range records {
		kind := types.RecordKindMessage
		name := rec.ROSFilename
		switch {
		case strings.HasSuffix(name, types.RecordKindService.Extension()):
			kind = types.RecordKindService
			name = strings.TrimSuffix(name, types.RecordKindService.Extension())
		default:
			name = strings.TrimSuffix(name, types.RecordKindMessage.Extension())
		}
		entries = append(entries, types.ManifestEntry{
			Identifier:  name,
			Kind:        kind,
			SourceTopic: rec.TopicName,
			EventName:   rec.EventName,
			OriginHint:  rec.ProtoFile,
		})
	}
	return entries, nil
}

func (a ManifestFileAdapter) write(name string, data []byte) error {
	path, err := ensurePath(a.Fs, a.Dir, name)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(a.Fs, path, data, 0o644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write " + name).
			WithCause(err)
	}
	return nil
}

var _ ports.ManifestPort = ManifestFileAdapter{}
