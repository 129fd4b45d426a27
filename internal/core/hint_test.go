package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proto2ros/internal/types"
)

func TestHintResolverFullHintWins(t *testing.T) {
	scanner := NewBlockScanner(newMemCorpus(t, map[string]string{
		"sdv/body/msgs/body_seat.proto":  "message Status { int32 body = 1; }",
		"sdv/hmi/msgs/hmi_seat.proto":    "message Status { int32 hmi = 1; }",
		"sdv/hmi/rpc/hmi_seat_rpc.proto": "message Status { int32 rpc = 1; }",
	}))
	resolver := NewHintResolver(scanner, []string{"msgs"})

	block, ok := resolver.Resolve(testContext(), Lookup{
		Kind:     types.BlockKindMessage,
		Name:     "Status",
		Hint:     types.ContextHint{"sdv", "hmi"},
		TopLevel: true,
	})
	require.True(t, ok)
	assert.Equal(t, "sdv/hmi/msgs/hmi_seat.proto", block.OriginFile.Path)
}

func TestHintResolverDropsTrailingSegments(t *testing.T) {
	scanner := NewBlockScanner(newMemCorpus(t, map[string]string{
		"a/other.proto":           "message Status { int32 a = 1; }",
		"sdv/chassis/brake.proto": "message Status { int32 b = 1; }",
	}))
	resolver := NewHintResolver(scanner, nil)

	block, ok := resolver.Resolve(testContext(), Lookup{
		Kind: types.BlockKindMessage,
		Name: "Status",
		Hint: types.ContextHint{"sdv", "chassis", "brake", "v2", "extra"},
	})
	require.True(t, ok)
	assert.Equal(t, "sdv/chassis/brake.proto", block.OriginFile.Path)
}

func TestHintResolverTopLevelFallsBack(t *testing.T) {
	scanner := NewBlockScanner(newMemCorpus(t, map[string]string{
		"sdv/hmi/rpc/hmi_rpc.proto": "message Only { int32 a = 1; }",
	}))
	resolver := NewHintResolver(scanner, []string{"msgs"})

	block, ok := resolver.Resolve(testContext(), Lookup{
		Kind:     types.BlockKindMessage,
		Name:     "Only",
		Hint:     types.ContextHint{"sdv", "hmi"},
		TopLevel: true,
	})
	require.True(t, ok)
	assert.Equal(t, "hmi_rpc", block.OriginHint())
}

func TestHintResolverHintedMatchBeatsUnhintedTopLevel(t *testing.T) {
	scanner := NewBlockScanner(newMemCorpus(t, map[string]string{
		"sdv/rpc/chassis_brake.proto": "message Status { int32 a = 1; }",
		"body/msgs/hmi_seat.proto":    "message Status { int32 b = 1; }",
	}))
	resolver := NewHintResolver(scanner, []string{"msgs"})

	block, ok := resolver.Resolve(testContext(), Lookup{
		Kind:     types.BlockKindMessage,
		Name:     "Status",
		Hint:     types.ContextHint{"sdv"},
		TopLevel: true,
	})
	require.True(t, ok)
	assert.Equal(t, "sdv/rpc/chassis_brake.proto", block.OriginFile.Path)

	block, ok = resolver.Resolve(testContext(), Lookup{
		Kind:     types.BlockKindMessage,
		Name:     "Status",
		Hint:     types.ContextHint{"zzz"},
		TopLevel: true,
	})
	require.True(t, ok)
	assert.Equal(t, "body/msgs/hmi_seat.proto", block.OriginFile.Path)
}

func TestHintResolverTopLevelPrefersMessageDirsWithoutHint(t *testing.T) {
	scanner := NewBlockScanner(newMemCorpus(t, map[string]string{
		"a/rpc/api.proto":   "message Ping { int32 a = 1; }",
		"b/msgs/ping.proto": "message Ping { int32 b = 1; }",
	}))
	resolver := NewHintResolver(scanner, []string{"msgs"})

	block, ok := resolver.Resolve(testContext(), Lookup{Kind: types.BlockKindMessage, Name: "Ping", TopLevel: true})
	require.True(t, ok)
	assert.Equal(t, "b/msgs/ping.proto", block.OriginFile.Path)

	block, ok = resolver.Resolve(testContext(), Lookup{Kind: types.BlockKindMessage, Name: "Ping"})
	require.True(t, ok)
	assert.Equal(t, "a/rpc/api.proto", block.OriginFile.Path)
}

func TestHintResolverPreferFile(t *testing.T) {
	corpus := newMemCorpus(t, map[string]string{
		"a/first.proto":  "enum Mode { A = 0; }",
		"b/second.proto": "enum Mode { B = 0; }",
	})
	resolver := NewHintResolver(NewBlockScanner(corpus), nil)

	block, ok := resolver.Resolve(testContext(), Lookup{
		Kind:       types.BlockKindEnum,
		Name:       "Mode",
		PreferFile: types.CorpusFile{Root: memRoot, Path: "b/second.proto"},
	})
	require.True(t, ok)
	assert.Equal(t, "second", block.OriginHint())
}
