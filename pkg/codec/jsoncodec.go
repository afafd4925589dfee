// pkg/codec/jsoncodec.go
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
)

type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	ContentType() string
}

type jsonStrict struct{}

// JSONStrict rejects unknown object fields and trailing content.
var JSONStrict Codec = jsonStrict{}

func (jsonStrict) Marshal(v any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (jsonStrict) Unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("json decode: %w", err)
	}
	// Probe for trailing data (must be EOF)
	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		return fmt.Errorf("json trailing content")
	}
	return nil
}

func (jsonStrict) ContentType() string { return "application/json" }

// DecodeAs decodes data into a fresh value of type t. Pointer types get a newly
// allocated pointee, or nil for an encoded null.
func DecodeAs(c Codec, data []byte, t reflect.Type) (reflect.Value, error) {
	if c == nil || t == nil {
		return reflect.Value{}, fmt.Errorf("codec and target type required")
	}
	dst := reflect.New(t)
	if err := c.Unmarshal(data, dst.Interface()); err != nil {
		return reflect.Value{}, fmt.Errorf("decode %s: %w", t, err)
	}
	return dst.Elem(), nil
}
