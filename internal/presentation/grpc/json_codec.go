package grpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// codecName is what clients put in grpc.CallContentSubtype to select this
// codec instead of proto.
const codecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec serializes the hand-rolled message structs in proto.go, which
// only carry json tags. Decimal fields travel as strings.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return codecName
}
