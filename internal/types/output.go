package types

import "strings"

// OutputRecord is one generated message or service definition. Lines hold
// the record body without trailing newlines.
type OutputRecord struct {
	Name  string
	Kind  RecordKind
	Lines []string
}

func (r OutputRecord) FileName() string {
	return r.Name + r.Kind.Extension()
}

func (r OutputRecord) Content() string {
	if len(r.Lines) == 0 {
		return ""
	}
	return strings.Join(r.Lines, "\n") + "\n"
}

// ManifestEntry records the provenance of one top-level generated record.
// Entries are mutated in place by renaming passes and never deleted.
type ManifestEntry struct {
	Identifier  string
	Kind        RecordKind
	SourceTopic string
	EventName   string
	OriginHint  string
}

func (e ManifestEntry) FileName() string {
	return e.Identifier + e.Kind.Extension()
}

// RenameMap maps an original identifier to its new identifier for a single
// record kind.
type RenameMap map[string]string

// RenamePlan groups rename maps by record kind so a single transaction can
// rename messages and services together.
type RenamePlan map[RecordKind]RenameMap

func (p RenamePlan) Empty() bool {
	for _, m := range p {
		if len(m) > 0 {
			return false
		}
	}
	return true
}

// Lookup returns the new identifier for name of the given kind.
func (p RenamePlan) Lookup(kind RecordKind, name string) (string, bool) {
	m, ok := p[kind]
	if !ok {
		return "", false
	}
	renamed, ok := m[name]
	return renamed, ok
}

type recordKey struct {
	kind RecordKind
	name string
}

// RecordSet keeps emitted records keyed by kind and name, preserving
// emission order so every export is deterministic.
type RecordSet struct {
	order   []recordKey
	records map[recordKey]*OutputRecord
}

func NewRecordSet() *RecordSet {
	return &RecordSet{records: map[recordKey]*OutputRecord{}}
}

// Put stores rec, replacing any record of the same kind and name while
// keeping its original position.
func (s *RecordSet) Put(rec OutputRecord) {
	key := recordKey{kind: rec.Kind, name: rec.Name}
	if _, exists := s.records[key]; !exists {
		s.order = append(s.order, key)
	}
	stored := rec
	s.records[key] = &stored
}

func (s *RecordSet) Get(kind RecordKind, name string) (*OutputRecord, bool) {
	rec, ok := s.records[recordKey{kind: kind, name: name}]
	return rec, ok
}

func (s *RecordSet) Has(kind RecordKind, name string) bool {
	_, ok := s.records[recordKey{kind: kind, name: name}]
	return ok
}

// Rename moves a record to a new name. It returns false when the source is
// missing or the target is already taken.
func (s *RecordSet) Rename(kind RecordKind, from string, to string) bool {
	oldKey := recordKey{kind: kind, name: from}
	newKey := recordKey{kind: kind, name: to}
	rec, ok := s.records[oldKey]
	if !ok {
		return false
	}
	if from == to {
		return true
	}
	if _, taken := s.records[newKey]; taken {
		return false
	}
	delete(s.records, oldKey)
	rec.Name = to
	s.records[newKey] = rec
	for i, key := range s.order {
		if key == oldKey {
			s.order[i] = newKey
			break
		}
	}
	return true
}

// Records returns copies of all records in emission order.
func (s *RecordSet) Records() []OutputRecord {
	out := make([]OutputRecord, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, *s.records[key])
	}
	return out
}

// Names returns record names of one kind in emission order.
func (s *RecordSet) Names(kind RecordKind) []string {
	var names []string
	for _, key := range s.order {
		if key.kind == kind {
			names = append(names, key.name)
		}
	}
	return names
}

func (s *RecordSet) Len() int {
	return len(s.order)
}

// RunReport summarises one generation run.
type RunReport struct {
	Documents       int            `yaml:"documents"`
	Requests        int            `yaml:"requests"`
	RPCRequests     int            `yaml:"rpc_requests"`
	Skipped         int            `yaml:"skipped"`
	Messages        int            `yaml:"messages"`
	Services        int            `yaml:"services"`
	ManifestEntries int            `yaml:"manifest_entries"`
	Renamed         int            `yaml:"renamed"`
	Warnings        map[string]int `yaml:"warnings"`
}

// PackageMeta describes the ROS interface package wrapping generated
// records.
type PackageMeta struct {
	Name        string
	Version     string
	Description string
	Maintainer  string
	License     string
	Dir         string
}
