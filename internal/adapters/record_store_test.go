package adapters

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proto2ros/internal/types"
)

func TestRecordStoreAdapterRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewRecordStoreAdapter(fs, "/out/msg", "/out/srv")

	require.NoError(t, store.Write(types.OutputRecord{Name: "Status", Kind: types.RecordKindMessage, Lines: []string{"std_msgs/Header header", "int32 a"}}))
	require.NoError(t, store.Write(types.OutputRecord{Name: "Belt", Kind: types.RecordKindMessage, Lines: []string{"bool fastened"}}))
	require.NoError(t, store.Write(types.OutputRecord{Name: "Move", Kind: types.RecordKindService, Lines: []string{"int32 target", "---", "bool ok"}}))

	data, err := afero.ReadFile(fs, "/out/srv/Move.srv")
	require.NoError(t, err)
	if diff := cmp.Diff("int32 target\n---\nbool ok\n", string(data)); diff != "" {
		t.Fatalf("unexpected srv content (-want +got):\n%s", diff)
	}

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"Belt", "Status"}, loaded.Names(types.RecordKindMessage))
	assert.Equal(t, []string{"Move"}, loaded.Names(types.RecordKindService))
	rec, ok := loaded.Get(types.RecordKindMessage, "Status")
	require.True(t, ok)
	assert.Equal(t, []string{"std_msgs/Header header", "int32 a"}, rec.Lines)

	require.NoError(t, store.Remove(types.RecordKindMessage, "Belt"))
	require.NoError(t, store.Remove(types.RecordKindMessage, "Belt"))
	exists, err := afero.Exists(fs, "/out/msg/Belt.msg")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRecordStoreAdapterEmptyDir(t *testing.T) {
	store := NewRecordStoreAdapter(afero.NewMemMapFs(), "", "/srv")
	err := store.Write(types.OutputRecord{Name: "A", Kind: types.RecordKindMessage})
	assert.Error(t, err)

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Zero(t, loaded.Len())
}
