package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/tidwall/gjson"
)

// source is the registry object a component was decoded from. Keys keep
// their first-seen order.
type source struct {
	keys   []string
	values map[string]json.RawMessage
}

func decodeObject(data []byte) (*source, error) {
	obj := gjson.ParseBytes(data)
	if !obj.IsObject() {
		return nil, fmt.Errorf("component must be a JSON object, got %s", data)
	}

	src := &source{values: make(map[string]json.RawMessage)}
	obj.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		if _, seen := src.values[k]; !seen {
			src.keys = append(src.keys, k)
		}
		src.values[k] = json.RawMessage(value.Raw)
		return true
	})
	return src, nil
}

// componentFields has Component's layout without its JSON methods.
type componentFields Component

// componentZeros maps every modelled JSON key to the encoding of its zero value.
var componentZeros = func() map[string]string {
	zeros := make(map[string]string)
	t := reflect.TypeOf(Component{})
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if !f.IsExported() || name == "" || name == "-" {
			continue
		}
		zero, err := marshalJSON(reflect.Zero(f.Type).Interface(), "")
		if err != nil {
			panic(err)
		}
		zeros[name] = zero
	}
	return zeros
}()

func isZeroLiteral(raw json.RawMessage) bool {
	switch v := strings.TrimSpace(string(raw)); v {
	case "null", "false", `""`, "[]", "{}":
		return true
	default:
		var n float64
		return json.Unmarshal([]byte(v), &n) == nil && n == 0
	}
}

func (c *Component) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}
	var fields componentFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	src, err := decodeObject(data)
	if err != nil {
		return err
	}
	*c = Component(fields)
	c.src = src
	return nil
}

// MarshalJSON writes a decoded component back with every key of its source
// object in the original order: modelled keys carry their current value and
// keys this package does not model pass through untouched. Modelled keys the
// source lacked follow, omitted when zero.
func (c Component) MarshalJSON() ([]byte, error) {
	modelled, err := marshalJSON(componentFields(c), "")
	if err != nil {
		return nil, err
	}
	if c.src == nil {
		return []byte(modelled), nil
	}
	current, err := decodeObject([]byte(modelled))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	write := func(key string, value []byte) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, err := marshalJSON(key, "")
		if err != nil {
			return err
		}
		buf.WriteString(k)
		buf.WriteByte(':')
		buf.Write(value)
		return nil
	}

	for _, key := range c.src.keys {
		value, ok := current.values[key]
		if !ok {
			value = c.src.values[key]
			if zero, modelledKey := componentZeros[key]; modelledKey && !isZeroLiteral(value) {
				value = json.RawMessage(zero)
			}
		}
		if err := write(key, value); err != nil {
			return nil, err
		}
	}
	for _, key := range current.keys {
		if _, seen := c.src.values[key]; seen || isZeroLiteral(current.values[key]) {
			continue
		}
		if err := write(key, current.values[key]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
