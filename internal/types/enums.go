package types

type BlockKind string

const (
	BlockKindMessage BlockKind = "message"
	BlockKindEnum    BlockKind = "enum"
	BlockKindService BlockKind = "service"
)

type RecordKind string

const (
	RecordKindMessage RecordKind = "msg"
	RecordKindService RecordKind = "srv"
)

// Extension returns the file extension, including the dot, used for records
// of this kind.
func (k RecordKind) Extension() string {
	return "." + string(k)
}

type WarningKind string

const (
	WarningNotFound            WarningKind = "not-found"
	WarningEmptyDefinition     WarningKind = "empty-definition"
	WarningNameTooLong         WarningKind = "name-too-long"
	WarningPersistentCollision WarningKind = "persistent-collision"
	WarningSkippedField        WarningKind = "skipped-field"
	WarningRenameConflict      WarningKind = "rename-conflict"
	WarningInfo                WarningKind = "info"
)
