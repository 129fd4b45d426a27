package policies

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnumIntegerType(t *testing.T) {
	tests := []struct {
		name   string
		values []int64
		want   string
	}{
		{name: "small unsigned", values: []int64{0, 1, 255}, want: "uint8"},
		{name: "wide unsigned", values: []int64{0, 256}, want: "uint16"},
		{name: "huge unsigned", values: []int64{0, 70000}, want: "uint32"},
		{name: "small signed", values: []int64{-1, 127}, want: "int8"},
		{name: "max over int8", values: []int64{-1, 200}, want: "int16"},
		{name: "min under int8", values: []int64{-129, 0}, want: "int16"},
		{name: "int32", values: []int64{-1, 40000}, want: "int32"},
		{name: "empty", values: nil, want: "uint8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EnumIntegerType(tt.values))
		})
	}
}

func TestScalarType(t *testing.T) {
	got, ok := ScalarType("double")
	assert.True(t, ok)
	assert.Equal(t, "float64", got)

	got, ok = ScalarType("google.protobuf.sfixed32")
	assert.True(t, ok)
	assert.Equal(t, "int32", got)

	_, ok = ScalarType("SeatStatus")
	assert.False(t, ok)
}

func TestResizeInteger(t *testing.T) {
	got, ok := ResizeInteger("uint32", "PBS_ONE")
	assert.True(t, ok)
	assert.Equal(t, "uint8", got)

	got, ok = ResizeInteger("int32", "PBS_EIGHT")
	assert.True(t, ok)
	assert.Equal(t, "int64", got)

	_, ok = ResizeInteger("float32", "PBS_TWO")
	assert.False(t, ok)

	_, ok = ResizeInteger("int32", "PBS_SEVEN")
	assert.False(t, ok)
}
