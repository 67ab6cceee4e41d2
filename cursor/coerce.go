package cursor

import (
	"bytes"
	"reflect"

	"github.com/go-data-exporter/rowcursor/blob"
	"github.com/go-data-exporter/rowcursor/tostring"
)

// isNull reports whether a raw value is SQL NULL: a nil interface or a nil
// pointer.
func isNull(raw any) bool {
	if raw == nil {
		return true
	}
	rv := reflect.ValueOf(raw)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// binaryBytes returns the content of a binary buffer raw value.
func binaryBytes(raw any) ([]byte, bool) {
	switch b := raw.(type) {
	case []byte:
		return b, true
	case *bytes.Buffer:
		return b.Bytes(), true
	}
	return nil, false
}

// coerce converts a non-null raw value to target. Only LargeObject,
// RawBytes and cast targets can fail.
func coerce(raw any, target Target) (any, error) {
	switch target.kind {
	case KindAny:
		if b, ok := binaryBytes(raw); ok {
			return b, nil
		}
		return raw, nil
	case KindText:
		return tostring.ToString(raw).String, nil
	case KindLargeObject:
		b, ok := binaryBytes(raw)
		if !ok {
			return nil, &CastError{Value: raw, Target: target}
		}
		return blob.New(b), nil
	case KindRawBytes:
		b, ok := binaryBytes(raw)
		if !ok {
			return nil, &CastError{Value: raw, Target: target}
		}
		return b, nil
	}
	if target.rtype == nil || !reflect.TypeOf(raw).AssignableTo(target.rtype) {
		return nil, &CastError{Value: raw, Target: target}
	}
	return raw, nil
}
