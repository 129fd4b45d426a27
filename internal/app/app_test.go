package app

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const seatProto = `syntax = "proto3";
package sdv.hmi;

message SeatStatus {
  int32 position = 1;
  Belt belt = 2;
}

message Belt {
  bool fastened = 1;
}
`

const seatRPCProto = `syntax = "proto3";
package sdv.seat;

service SeatService {
  rpc Move(MoveRequest) returns (MoveReply);
}
message MoveRequest {
  int32 target = 1;
  Speed speed = 2;
}
message MoveReply {
  bool accepted = 1;
}
message Speed {
  float value = 1;
}
`

const hmiDocument = `component HmiManager {
  event {
    event_name: "seat_changed";
    topic_name: "sdv.hmi.SeatStatus";
  }
  rpc_definition {
    rpc_service_name: "sdv.seat.SeatService";
    method_vsidl_name: "Move";
  }
}
`

func testContext() context.Context {
	return zerolog.Nop().WithContext(context.Background())
}

func writeFiles(t *testing.T, fs afero.Fs, files map[string]string) {
	t.Helper()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoErrorf(t, err, "reading %s", path)
	return string(data)
}

// seatCorpus lays out one schema root and one document root.
func seatCorpus(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/proto/sdv/hmi/msgs/hmi_seat.proto": seatProto,
		"/proto/sdv/seat/rpc/seat_rpc.proto": seatRPCProto,
		"/idl/swc/HmiManager.sdvsidl":        hmiDocument,
		"/idl/swc/OccupantMonitor.sdvsidl":   "component OccupantMonitor {}\n",
		"/idl/projects.txt":                  "HmiManager # seat\n",
	})
	return fs
}

func seatGenerateRequest() GenerateRequest {
	return GenerateRequest{
		ProtoDirs:    []string{"/proto"},
		IDLDirs:      []string{"/idl/swc"},
		MsgOutput:    "/out/msg",
		SrvOutput:    "/out/srv",
		TopLevelDirs: []string{"msgs"},
	}
}
