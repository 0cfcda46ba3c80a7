// Package proto holds the wire messages and service descriptors of the
// file and quota services. Messages are encoded in the protobuf binary
// format described by file.proto and quota.proto.
package proto

import (
	"fmt"

	"google.golang.org/grpc/encoding"
	gproto "google.golang.org/protobuf/proto"
)

// CodecName is the content-subtype used on the wire.
const CodecName = "proto"

// Message is implemented by every request and response of this package.
type Message interface {
	appendWire(b []byte) []byte
	consumeWire(b []byte) error
}

// Marshal encodes m in protobuf binary form.
func Marshal(m Message) []byte {
	return m.appendWire(nil)
}

// Unmarshal decodes b into m. Unknown fields are skipped.
func Unmarshal(b []byte, m Message) error {
	return m.consumeWire(b)
}

// codec handles the messages of this package and falls back to the
// protobuf runtime for generated messages such as the health service.
type codec struct{}

func (codec) Marshal(v any) ([]byte, error) {
	switch m := v.(type) {
	case Message:
		return Marshal(m), nil
	case gproto.Message:
		return gproto.Marshal(m)
	default:
		return nil, fmt.Errorf("proto: cannot marshal %T", v)
	}
}

func (codec) Unmarshal(data []byte, v any) error {
	switch m := v.(type) {
	case Message:
		return Unmarshal(data, m)
	case gproto.Message:
		return gproto.Unmarshal(data, m)
	default:
		return fmt.Errorf("proto: cannot unmarshal into %T", v)
	}
}

func (codec) Name() string { return CodecName }

func init() {
	encoding.RegisterCodec(codec{})
}
