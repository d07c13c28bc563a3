// Package rpc holds the Connect plumbing shared by every service: the JSON
// codec, error mapping, interceptors and client helpers.
package rpc

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

// codecNameJSON replaces Connect's protobuf-only JSON codec so plain Go
// structs can be served as application/json.
const codecNameJSON = "json"

type jsonCodec struct{}

var _ connect.Codec = jsonCodec{}

func (jsonCodec) Name() string { return codecNameJSON }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}

// Codec returns the JSON codec used by handlers and clients.
func Codec() connect.Codec {
	return jsonCodec{}
}
