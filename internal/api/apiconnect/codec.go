// Package apiconnect wires the vibewalk.v1 services to Connect handlers and
// clients. Messages travel as plain JSON rather than protobuf.
package apiconnect

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// codec marshals messages with encoding/json. Connect selects codecs by
// name, so registering it as "json" replaces the protobuf-JSON default.
type codec struct {
	name string
}

func (c codec) Name() string { return c.name }

func (codec) Marshal(msg any) ([]byte, error) { return json.Marshal(msg) }

func (codec) Unmarshal(data []byte, msg any) error { return json.Unmarshal(data, msg) }

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{
		connect.WithCodec(codec{name: "json"}),
		connect.WithCodec(codec{name: "json; charset=utf-8"}),
	}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{
		connect.WithCodec(codec{name: "json"}),
	}, opts...)
}
