// Package tostring provides functionality to convert arbitrary Go values
// into their default string representation, while also detecting NULL values.
// It backs text reads of a cursor and the text based codecs.
package tostring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// jsonStd is a high-performance JSON encoder/decoder compatible with the standard library.
var jsonStd = jsoniter.ConfigCompatibleWithStandardLibrary

// String represents a string value along with a flag indicating whether it was NULL.
// If IsNULL is true, then the value should be considered as NULL or absent.
type String struct {
	String string
	IsNULL bool
}

// ToString converts an arbitrary value to a String type, which contains
// a string representation of the value and a flag indicating if the value was NULL.
//
// Only nil and nil pointers are NULL. Pointers are followed, binary buffers
// are rendered as text, time.Time uses RFC3339Nano. Other values go through
// json.Marshaler, fmt.Stringer, a JSON encoding and finally %v.
func ToString(v any) String {
	if v == nil {
		return String{"", true}
	}
	switch v := v.(type) {
	case string:
		return String{v, false}
	case []byte:
		return String{string(v), false}
	case bool:
		return String{strconv.FormatBool(v), false}
	case int:
		return String{strconv.Itoa(v), false}
	case int8:
		return String{strconv.FormatInt(int64(v), 10), false}
	case int16:
		return String{strconv.FormatInt(int64(v), 10), false}
	case int32:
		return String{strconv.FormatInt(int64(v), 10), false}
	case int64:
		return String{strconv.FormatInt(v, 10), false}
	case uint:
		return String{strconv.FormatUint(uint64(v), 10), false}
	case uint8:
		return String{strconv.FormatUint(uint64(v), 10), false}
	case uint16:
		return String{strconv.FormatUint(uint64(v), 10), false}
	case uint32:
		return String{strconv.FormatUint(uint64(v), 10), false}
	case uint64:
		return String{strconv.FormatUint(v, 10), false}
	case time.Time:
		return String{v.Format(time.RFC3339Nano), false}
	case float32:
		return String{strconv.FormatFloat(float64(v), 'f', -1, 32), false}
	case float64:
		return String{strconv.FormatFloat(v, 'f', -1, 64), false}
	case *bytes.Buffer:
		return String{v.String(), false}
	case json.Marshaler:
		if jsonData, err := v.MarshalJSON(); err == nil {
			return String{strings.Trim(string(jsonData), `"`), false}
		}
	case fmt.Stringer:
		return String{v.String(), false}
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return String{"", true}
		}
		return ToString(rv.Elem().Interface())
	}
	if jsonData, err := jsonStd.Marshal(v); err == nil {
		return String{strings.Trim(string(jsonData), `"`), false}
	}
	return String{fmt.Sprintf("%v", v), false}
}
