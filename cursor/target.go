package cursor

import (
	"reflect"

	"github.com/go-data-exporter/rowcursor/blob"
)

// Kind is the category of a read target.
type Kind int

const (
	// KindCast converts by direct type assertion to a Go type.
	KindCast Kind = iota
	// KindAny passes raw values through; binary buffers become []byte.
	KindAny
	// KindText yields the default string representation.
	KindText
	// KindLargeObject wraps a binary buffer in a *blob.Blob.
	KindLargeObject
	// KindRawBytes yields the bytes of a binary buffer.
	KindRawBytes
)

// Target is the type a value is requested as.
type Target struct {
	kind  Kind
	rtype reflect.Type
}

// The fixed targets. Any other Go type is requested through TargetOf.
var (
	Any         = Target{kind: KindAny, rtype: reflect.TypeOf((*any)(nil)).Elem()}
	Text        = Target{kind: KindText, rtype: reflect.TypeOf((*string)(nil)).Elem()}
	LargeObject = Target{kind: KindLargeObject, rtype: reflect.TypeOf((**blob.Blob)(nil)).Elem()}
	RawBytes    = Target{kind: KindRawBytes, rtype: reflect.TypeOf((*[]byte)(nil)).Elem()}
)

// TargetOf returns the target matching T. any, string, *blob.Blob and
// []byte map to Any, Text, LargeObject and RawBytes; every other type is a
// cast target.
func TargetOf[T any]() Target {
	return TargetFor(reflect.TypeOf((*T)(nil)).Elem())
}

// TargetFor is TargetOf for a reflect.Type.
func TargetFor(t reflect.Type) Target {
	for _, known := range []Target{Any, Text, LargeObject, RawBytes} {
		if t == known.rtype {
			return known
		}
	}
	return Target{kind: KindCast, rtype: t}
}

// Kind returns the target category.
func (t Target) Kind() Kind {
	return t.kind
}

// Type returns the Go type values of this target have.
func (t Target) Type() reflect.Type {
	return t.rtype
}

func (t Target) String() string {
	if t.rtype == nil {
		return "<invalid>"
	}
	return t.rtype.String()
}
