// Package api defines the homegame.v1 RPC surface: wire messages, procedure
// names, and Connect handler and client constructors for each service.
//
// Messages are plain Go structs carried as JSON, so the services speak the
// Connect protocol with Content-Type application/json and need no generated
// code. Handlers accept requests from any Connect client configured for JSON.
package api

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// jsonCodec marshals plain structs. It replaces Connect's built-in "json"
// codec, which only accepts protobuf messages.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	return json.Unmarshal(data, msg)
}

// WithJSON is the codec option every handler and client in this package uses.
func WithJSON() connect.Option {
	return connect.WithCodec(jsonCodec{})
}
