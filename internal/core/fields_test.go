package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seatBlock = `message SeatStatus {
  // position in mm
  int32 position = 1 [(sdv.primitive_byte_size) = PBS_TWO];
  repeated float heat = 2 [(sdv.repeated_field_max_count) = 4];
  bytes payload = 3 [(sdv.variable_type_max_size) = 16];
  message Inner {
    int32 hidden = 1;
  }
  enum Local { LOCAL_A = 0; }
  oneof choice {
    string label = 4;
    Inner inner = 5;
  }
  reserved 6, 7;
  option deprecated = true;
  sdv.common.Mode mode = 8;
}`

func TestParseFields(t *testing.T) {
	got := ParseFields(seatBlock)
	want := []Field{
		{Type: "int32", Name: "position", Options: "(sdv.primitive_byte_size) = PBS_TWO"},
		{Repeated: true, Type: "float", Name: "heat", Options: "(sdv.repeated_field_max_count) = 4"},
		{Type: "bytes", Name: "payload", Options: "(sdv.variable_type_max_size) = 16"},
		{Type: "string", Name: "label"},
		{Type: "Inner", Name: "inner"},
		{Type: "sdv.common.Mode", Name: "mode"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFieldsMalformedBlock(t *testing.T) {
	assert.Empty(t, ParseFields("message Broken { int32 a = 1;"))
	assert.Empty(t, ParseFields("no braces here"))
}

func TestFieldOptions(t *testing.T) {
	fields := ParseFields(seatBlock)
	require.Len(t, fields, 6)

	size, ok := PrimitiveByteSize(fields[0].Options)
	require.True(t, ok)
	assert.Equal(t, "PBS_TWO", size)

	count, ok := RepeatedMaxCount(fields[1].Options)
	require.True(t, ok)
	assert.Equal(t, 4, count)

	max, ok := VariableMaxSize(fields[2].Options)
	require.True(t, ok)
	assert.Equal(t, 16, max)

	_, ok = VariableMaxSize(fields[3].Options)
	assert.False(t, ok)
}

func TestParseEnumConstants(t *testing.T) {
	block := `enum Mode {
  option allow_alias = true;
  MODE_UNKNOWN = 0;
  MODE__ON = 1; // double underscore
  MODE_NEG = -1;
  MODE_HEX = 0x10 [deprecated = true];
}`
	want := []EnumConstant{
		{Name: "MODE_UNKNOWN", Value: 0},
		{Name: "MODE__ON", Value: 1},
		{Name: "MODE_NEG", Value: -1},
		{Name: "MODE_HEX", Value: 16},
	}
	if diff := cmp.Diff(want, ParseEnumConstants(block)); diff != "" {
		t.Fatalf("constants mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, ParseEnumConstants("enum Empty {}"))
}

func TestParseRPC(t *testing.T) {
	block := `service SeatService {
  rpc Move(sdv.seat.MoveRequest) returns (MoveReply);
  rpc Watch(stream WatchRequest) returns (stream WatchEvent) {}
}`
	req, resp, ok := ParseRPC(block, "Move")
	require.True(t, ok)
	assert.Equal(t, "sdv.seat.MoveRequest", req)
	assert.Equal(t, "MoveReply", resp)

	req, resp, ok = ParseRPC(block, "Watch")
	require.True(t, ok)
	assert.Equal(t, "WatchRequest", req)
	assert.Equal(t, "WatchEvent", resp)

	_, _, ok = ParseRPC(block, "Mov")
	assert.False(t, ok)
}
