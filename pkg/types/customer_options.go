package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

var errNotCollection = errors.New("customer options: expected a JSON object or array")

type scalarKind uint8

const (
	scalarString scalarKind = iota
	scalarNumber
	scalarBool
	scalarNull
)

// OptionValue is either a scalar or a sequence of further OptionValues.
// Sequences decoded from JSON objects remember their keys so they encode back
// to the same shape.
type OptionValue struct {
	sequence bool
	kind     scalarKind
	text     string
	items    []OptionValue
	keys     []string
}

// Scalar builds a string scalar.
func Scalar(value string) OptionValue {
	return OptionValue{kind: scalarString, text: value}
}

// Sequence builds a list value from the provided items.
func Sequence(items ...OptionValue) OptionValue {
	if items == nil {
		items = []OptionValue{}
	}
	return OptionValue{sequence: true, items: items}
}

// Strings builds a sequence of string scalars.
func Strings(values ...string) OptionValue {
	items := make([]OptionValue, 0, len(values))
	for _, v := range values {
		items = append(items, Scalar(v))
	}
	return Sequence(items...)
}

func (v OptionValue) IsSequence() bool {
	return v.sequence
}

// Items returns the children of a sequence, or nil for scalars.
func (v OptionValue) Items() []OptionValue {
	if !v.sequence {
		return nil
	}
	return v.items
}

// IsNull reports whether the scalar was a JSON null.
func (v OptionValue) IsNull() bool {
	return !v.sequence && v.kind == scalarNull
}

// String returns the raw scalar text. Strings are unquoted and null is empty.
func (v OptionValue) String() string {
	if v.sequence {
		parts := make([]string, 0, len(v.items))
		for _, item := range v.items {
			parts = append(parts, item.String())
		}
		return fmt.Sprint(parts)
	}
	return v.text
}

func (v OptionValue) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v *OptionValue) UnmarshalJSON(data []byte) error {
	dec := newTokenDecoder(data)
	decoded, err := decodeOptionValue(dec)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

func (v OptionValue) encode(buf *bytes.Buffer) error {
	if !v.sequence {
		switch v.kind {
		case scalarNull:
			buf.WriteString("null")
		case scalarNumber, scalarBool:
			buf.WriteString(v.text)
		default:
			encoded, err := json.Marshal(v.text)
			if err != nil {
				return err
			}
			buf.Write(encoded)
		}
		return nil
	}

	if v.keys != nil {
		buf.WriteByte('{')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(v.keys[i])
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	}

	buf.WriteByte('[')
	for i, item := range v.items {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := item.encode(buf); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

// CustomerOptionEntry pairs an option code with its submitted value.
type CustomerOptionEntry struct {
	Code  string
	Value OptionValue
}

// CustomerOptions is the submitted option payload in submission order.
// A nil value means the field was absent.
type CustomerOptions []CustomerOptionEntry

// Codes lists the submitted option codes in submission order.
func (c CustomerOptions) Codes() []string {
	codes := make([]string, 0, len(c))
	for _, entry := range c {
		codes = append(codes, entry.Code)
	}
	return codes
}

// Get returns the value submitted for code.
func (c CustomerOptions) Get(code string) (OptionValue, bool) {
	for _, entry := range c {
		if entry.Code == code {
			return entry.Value, true
		}
	}
	return OptionValue{}, false
}

// Set replaces the value for code, appending when the code is new.
func (c *CustomerOptions) Set(code string, value OptionValue) {
	for i := range *c {
		if (*c)[i].Code == code {
			(*c)[i].Value = value
			return
		}
	}
	*c = append(*c, CustomerOptionEntry{Code: code, Value: value})
}

func (c CustomerOptions) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Code)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if err := entry.Value.encode(&buf); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts an object keyed by option code, or an array keyed by index.
func (c *CustomerOptions) UnmarshalJSON(data []byte) error {
	if !IsJSONCollection(data) {
		return errNotCollection
	}
	dec := newTokenDecoder(data)
	value, err := decodeOptionValue(dec)
	if err != nil {
		return err
	}

	out := CustomerOptions{}
	for i, item := range value.items {
		code := strconv.Itoa(i)
		if value.keys != nil {
			code = value.keys[i]
		}
		out.Set(code, item)
	}
	*c = out
	return nil
}

// IsJSONCollection reports whether raw holds a JSON object or array.
func IsJSONCollection(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}
	return trimmed[0] == '{' || trimmed[0] == '['
}

func newTokenDecoder(data []byte) *json.Decoder {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec
}

func decodeOptionValue(dec *json.Decoder) (OptionValue, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return OptionValue{}, io.ErrUnexpectedEOF
		}
		return OptionValue{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			items := []OptionValue{}
			for dec.More() {
				item, err := decodeOptionValue(dec)
				if err != nil {
					return OptionValue{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return OptionValue{}, err
			}
			return Sequence(items...), nil
		case '{':
			seq := OptionValue{sequence: true, items: []OptionValue{}, keys: []string{}}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return OptionValue{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return OptionValue{}, fmt.Errorf("customer options: unexpected key %v", keyTok)
				}
				item, err := decodeOptionValue(dec)
				if err != nil {
					return OptionValue{}, err
				}
				seq.setKeyed(key, item)
			}
			if _, err := dec.Token(); err != nil {
				return OptionValue{}, err
			}
			return seq, nil
		default:
			return OptionValue{}, fmt.Errorf("customer options: unexpected delimiter %q", t)
		}
	case string:
		return Scalar(t), nil
	case json.Number:
		return OptionValue{kind: scalarNumber, text: t.String()}, nil
	case bool:
		return OptionValue{kind: scalarBool, text: strconv.FormatBool(t)}, nil
	case nil:
		return OptionValue{kind: scalarNull}, nil
	default:
		return OptionValue{}, fmt.Errorf("customer options: unexpected token %v", tok)
	}
}

// setKeyed keeps the first position of a repeated key and the last value.
func (v *OptionValue) setKeyed(key string, item OptionValue) {
	for i, existing := range v.keys {
		if existing == key {
			v.items[i] = item
			return
		}
	}
	v.keys = append(v.keys, key)
	v.items = append(v.items, item)
}
