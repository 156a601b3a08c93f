package value

import (
	"encoding/json"
	"fmt"
	"io"
)

// DecodeJSON reads a single JSON value and converts it to its Value
// form. Object keys keep the order they have in the input, numbers
// and booleans are coerced to their textual form.
func DecodeJSON(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return decodeValue(dec)
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return None(), err
	}
	switch tok := tok.(type) {
	case json.Delim:
		switch tok {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeList(dec)
		default:
			return None(), fmt.Errorf("json: unexpected %q", tok)
		}
	case string:
		return Str(tok), nil
	case json.Number:
		return Str(tok.String()), nil
	case bool:
		return Bool(tok), nil
	case nil:
		return Null(), nil
	default:
		return None(), fmt.Errorf("json: unsupported token %v", tok)
	}
}

func decodeObject(dec *json.Decoder) (Value, error) {
	var fields []Field
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return None(), err
		}
		key, ok := tok.(string)
		if !ok {
			return None(), fmt.Errorf("json: object key expected")
		}
		v, err := decodeValue(dec)
		if err != nil {
			return None(), err
		}
		fields = append(fields, F(key, v))
	}
	if _, err := dec.Token(); err != nil {
		return None(), err
	}
	return Object(fields...), nil
}

func decodeList(dec *json.Decoder) (Value, error) {
	var items []Value
	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return None(), err
		}
		items = append(items, v)
	}
	if _, err := dec.Token(); err != nil {
		return None(), err
	}
	return ListOf(items...), nil
}
