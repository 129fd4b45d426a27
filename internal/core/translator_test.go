package core

import (
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proto2ros/internal/policies"
	"proto2ros/internal/types"
)

const hmiSeatProto = `syntax = "proto3";
package sdv.hmi;

message SeatStatus {
  int32 position = 1 [(sdv.primitive_byte_size) = PBS_TWO];
  repeated double heat = 2 [(sdv.repeated_field_max_count) = 4];
  Mode mode = 3;
  Mode previous_mode = 4;
  Belt belt = 5;
  bytes raw_bytes = 6;
  bytes blob = 7;
}

enum Mode {
  MODE_OFF = 0;
  MODE__ON = 1;
}

message Belt {
  bool fastened = 1;
}
`

func seatRequest() types.InterfaceRequest {
	return types.InterfaceRequest{
		SourceType:        "SeatStatus",
		ContextHint:       types.ContextHint{"sdv", "hmi"},
		DesiredOutputName: "SeatStatus",
		EventName:         "seat_changed",
	}
}

func warningKinds(tc *TranslationContext) []types.WarningKind {
	var kinds []types.WarningKind
	for _, w := range tc.Warnings {
		kinds = append(kinds, w.Kind)
	}
	return kinds
}

func TestTranslateTopLevelRecord(t *testing.T) {
	translator := newTestTranslator(t, map[string]string{"sdv/hmi/msgs/hmi_seat.proto": hmiSeatProto})
	tc := NewTranslationContext()

	name, emitted := translator.Translate(testContext(), tc, seatRequest())
	require.True(t, emitted)
	assert.Equal(t, "SeatStatus", name)

	want := []string{
		"std_msgs/Header header",
		"int16 position",
		"float64[4] heat",
		"uint8 mode",
		"# enum Mode",
		"uint8 C_MODE_OFF = 0",
		"uint8 C_MODE_ON = 1",
		"uint8 previous_mode  # Uses enum Mode",
		"Belt belt",
		"uint8[] blob",
	}
	if diff := cmp.Diff(want, recordLines(t, tc, types.RecordKindMessage, "SeatStatus")); diff != "" {
		t.Fatalf("SeatStatus mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"bool fastened"}, recordLines(t, tc, types.RecordKindMessage, "Belt")); diff != "" {
		t.Fatalf("Belt mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"Belt", "SeatStatus"}, tc.Records.Names(types.RecordKindMessage))

	wantManifest := []types.ManifestEntry{{
		Identifier:  "SeatStatus",
		Kind:        types.RecordKindMessage,
		SourceTopic: "SeatStatus",
		EventName:   "seat_changed",
		OriginHint:  "hmi_seat",
	}}
	if diff := cmp.Diff(wantManifest, tc.Manifest); diff != "" {
		t.Fatalf("manifest mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []types.WarningKind{types.WarningSkippedField}, warningKinds(tc))
}

func TestTranslateIsIdempotent(t *testing.T) {
	translator := newTestTranslator(t, map[string]string{"sdv/hmi/msgs/hmi_seat.proto": hmiSeatProto})
	tc := NewTranslationContext()

	_, emitted := translator.Translate(testContext(), tc, seatRequest())
	require.True(t, emitted)
	name, emitted := translator.Translate(testContext(), tc, seatRequest())
	assert.False(t, emitted)
	assert.Equal(t, "SeatStatus", name)
	assert.Equal(t, 2, tc.Records.Len())
	assert.Len(t, tc.Manifest, 1)
}

func TestTranslateCycleSafety(t *testing.T) {
	translator := newTestTranslator(t, map[string]string{
		"graph/msgs/graph.proto": `
message Node {
  Node next = 1;
  repeated Node children = 2;
  Edge edge = 3;
}
message Edge {
  Node target = 1;
}`,
	})
	tc := NewTranslationContext()

	_, emitted := translator.Translate(testContext(), tc, types.InterfaceRequest{SourceType: "Node"})
	require.True(t, emitted)
	assert.Equal(t, []string{"Edge", "Node"}, tc.Records.Names(types.RecordKindMessage), spew.Sdump(tc.Records.Records()))
	assert.Equal(t, []string{"std_msgs/Header header", "Node next", "Node[] children", "Edge edge"},
		recordLines(t, tc, types.RecordKindMessage, "Node"))
	assert.Equal(t, []string{"Node target"}, recordLines(t, tc, types.RecordKindMessage, "Edge"))
}

func TestTranslateCollidingNamesAcrossFiles(t *testing.T) {
	translator := newTestTranslator(t, map[string]string{
		"sdv/hmi/msgs/hmi_seat.proto":          "message Status { int32 a = 1; }",
		"sdv/chassis/msgs/chassis_brake.proto": "message Status { int32 b = 1; }",
	})
	tc := NewTranslationContext()

	first, ok := translator.Translate(testContext(), tc, types.InterfaceRequest{
		SourceType: "Status", ContextHint: types.ContextHint{"sdv", "hmi"}, DesiredOutputName: "Status",
	})
	require.True(t, ok)
	second, ok := translator.Translate(testContext(), tc, types.InterfaceRequest{
		SourceType: "Status", ContextHint: types.ContextHint{"sdv", "chassis"}, DesiredOutputName: "Status",
	})
	require.True(t, ok)

	assert.Equal(t, "Status", first)
	assert.Equal(t, "CBStatus", second)
	assert.Equal(t, []string{"std_msgs/Header header", "int32 b"}, recordLines(t, tc, types.RecordKindMessage, "CBStatus"))

	owners := map[string]string{}
	for _, name := range tc.Messages.Names() {
		owner, _ := tc.Messages.Owner(name)
		owners[name] = owner
	}
	assert.Equal(t, map[string]string{"Status": "hmi_seat", "CBStatus": "chassis_brake"}, owners)
}

func TestTranslateNestedSameNameRenamesOuter(t *testing.T) {
	translator := newTestTranslator(t, map[string]string{
		"sdv/hmi/msgs/hmi_seat.proto":          "message Status { sdv.chassis.Status brake = 1; }",
		"sdv/chassis/msgs/chassis_brake.proto": "message Status { int32 b = 1; }",
	})
	tc := NewTranslationContext()

	name, ok := translator.Translate(testContext(), tc, types.InterfaceRequest{
		SourceType: "Status", ContextHint: types.ContextHint{"sdv", "hmi"}, DesiredOutputName: "Status",
	})
	require.True(t, ok)
	assert.Equal(t, "HSStatus", name)
	assert.Equal(t, []string{"CBStatus", "HSStatus"}, tc.Records.Names(types.RecordKindMessage))
	assert.Equal(t, []string{"std_msgs/Header header", "CBStatus brake"}, recordLines(t, tc, types.RecordKindMessage, "HSStatus"))
	require.Len(t, tc.Manifest, 1)
	assert.Equal(t, "HSStatus", tc.Manifest[0].Identifier)
}

func TestTranslateNestedRenameRewritesPendingParents(t *testing.T) {
	translator := newTestTranslator(t, map[string]string{
		"msgs/top.proto":                       "message Top { sdv.hmi.Status s = 1; }",
		"sdv/hmi/msgs/hmi_seat.proto":          "message Status { sdv.chassis.Status brake = 1; }",
		"sdv/chassis/msgs/chassis_brake.proto": "message Status { int32 b = 1; }",
	})
	tc := NewTranslationContext()

	name, ok := translator.Translate(testContext(), tc, types.InterfaceRequest{SourceType: "Top"})
	require.True(t, ok)
	assert.Equal(t, "Top", name)
	assert.Equal(t, []string{"CBStatus", "HSStatus", "Top"}, tc.Records.Names(types.RecordKindMessage))
	assert.Equal(t, []string{"std_msgs/Header header", "HSStatus s"}, recordLines(t, tc, types.RecordKindMessage, "Top"))
	assert.Equal(t, []string{"CBStatus brake"}, recordLines(t, tc, types.RecordKindMessage, "HSStatus"))

	for _, rec := range tc.Records.Records() {
		for _, line := range rec.Lines {
			fields := strings.Fields(line)
			if len(fields) != 2 || strings.Contains(fields[0], "/") {
				continue
			}
			base, _, _ := strings.Cut(fields[0], "[")
			if policies.IsROSPrimitive(base) {
				continue
			}
			assert.Truef(t, tc.Records.Has(types.RecordKindMessage, base), "%s references missing record %s", rec.Name, base)
		}
	}
}

func TestTranslateSignedEnumWidth(t *testing.T) {
	translator := newTestTranslator(t, map[string]string{
		"msgs/level.proto": `
message Gauge { Level level = 1; }
enum Level { A = -1; B = 200; }`,
	})
	tc := NewTranslationContext()

	_, ok := translator.Translate(testContext(), tc, types.InterfaceRequest{SourceType: "Gauge"})
	require.True(t, ok)
	want := []string{"std_msgs/Header header", "int16 level", "# enum Level", "int16 C_A = -1", "int16 C_B = 200"}
	assert.Equal(t, want, recordLines(t, tc, types.RecordKindMessage, "Gauge"))
}

func TestTranslateEmptyEnumAndMissingType(t *testing.T) {
	translator := newTestTranslator(t, map[string]string{
		"msgs/odd.proto": `
message Odd {
  Nothing nothing = 1;
  Ghost ghost = 2;
}
enum Nothing {}`,
	})
	tc := NewTranslationContext()

	_, ok := translator.Translate(testContext(), tc, types.InterfaceRequest{SourceType: "Odd"})
	require.True(t, ok)
	assert.Equal(t, []string{"std_msgs/Header header", "uint8 nothing", "# empty enum: Nothing"},
		recordLines(t, tc, types.RecordKindMessage, "Odd"))
	assert.Equal(t, []types.WarningKind{types.WarningEmptyDefinition, types.WarningNotFound}, warningKinds(tc))
}

func TestTranslateNotFoundLeavesNothingBehind(t *testing.T) {
	translator := newTestTranslator(t, map[string]string{"msgs/a.proto": "message A { int32 x = 1; }"})
	tc := NewTranslationContext()

	_, ok := translator.Translate(testContext(), tc, types.InterfaceRequest{SourceType: "Missing"})
	assert.False(t, ok)
	assert.Zero(t, tc.Records.Len())
	assert.Empty(t, tc.Manifest)
	assert.Zero(t, tc.Messages.Len())
	assert.Equal(t, []types.WarningKind{types.WarningNotFound}, warningKinds(tc))
}

func TestTranslateLengthBound(t *testing.T) {
	longField := strings.Repeat("f", 70)
	longConst := strings.Repeat("K", 70)
	translator := newTestTranslator(t, map[string]string{
		"msgs/long.proto": "message Long { int32 " + longField + " = 1; Kind kind = 2; }\nenum Kind { " + longConst + " = 0; }",
	})
	tc := NewTranslationContext()

	_, ok := translator.Translate(testContext(), tc, types.InterfaceRequest{SourceType: "Long"})
	require.True(t, ok)
	for _, line := range recordLines(t, tc, types.RecordKindMessage, "Long") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		require.GreaterOrEqual(t, len(fields), 2, line)
		assert.LessOrEqual(t, len(fields[1]), MaxIdentifierLength, line)
	}
	assert.Equal(t, []types.WarningKind{types.WarningNameTooLong, types.WarningNameTooLong}, warningKinds(tc))
}

func TestTranslateDeterministic(t *testing.T) {
	files := map[string]string{
		"sdv/hmi/msgs/hmi_seat.proto":          hmiSeatProto,
		"sdv/chassis/msgs/chassis_brake.proto": "message SeatStatus { Belt belt = 1; }\nmessage Belt { int32 b = 1; }",
	}
	run := func() []types.OutputRecord {
		translator := newTestTranslator(t, files)
		tc := NewTranslationContext()
		translator.Translate(testContext(), tc, seatRequest())
		translator.Translate(testContext(), tc, types.InterfaceRequest{
			SourceType: "SeatStatus", ContextHint: types.ContextHint{"sdv", "chassis"}, DesiredOutputName: "SeatStatus",
		})
		return tc.Records.Records()
	}
	first, second := run(), run()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("runs differ (-first +second):\n%s", diff)
	}
	assert.Len(t, first, 4, spew.Sdump(first))
}
