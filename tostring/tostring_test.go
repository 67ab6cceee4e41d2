package tostring

import (
	"bytes"
	"net"
	"testing"
	"time"
)

type point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func TestToString(t *testing.T) {
	ts := time.Date(2024, 5, 6, 7, 8, 9, 10, time.UTC)
	n := 7
	var nilPtr *int
	tests := []struct {
		name   string
		in     any
		want   string
		isNULL bool
	}{
		{"nil", nil, "", true},
		{"nil pointer", nilPtr, "", true},
		{"string", "hello", "hello", false},
		{"empty string", "", "", false},
		{"bytes", []byte{'a', 'b'}, "ab", false},
		{"buffer", bytes.NewBufferString("buf"), "buf", false},
		{"bool", true, "true", false},
		{"int", 42, "42", false},
		{"int8", int8(-3), "-3", false},
		{"int64", int64(1) << 40, "1099511627776", false},
		{"uint16", uint16(9), "9", false},
		{"float32", float32(1.5), "1.5", false},
		{"float64", 3.14, "3.14", false},
		{"time", ts, "2024-05-06T07:08:09.00000001Z", false},
		{"zero time", time.Time{}, "0001-01-01T00:00:00Z", false},
		{"pointer", &n, "7", false},
		{"stringer", net.IPv4(10, 0, 0, 1), "10.0.0.1", false},
		{"struct", point{1, 2}, `{"x":1,"y":2}`, false},
		{"empty slice", []int{}, "[]", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToString(tt.in)
			if got.String != tt.want || got.IsNULL != tt.isNULL {
				t.Errorf("ToString(%v) = %+v, want {%q %v}", tt.in, got, tt.want, tt.isNULL)
			}
		})
	}
}
