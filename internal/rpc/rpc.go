// Package rpc adapts Connect to plain Go request/response structs. The
// service's domain types are hand-written rather than protoc-generated, so
// handlers are built directly with connect.NewUnaryHandler and a JSON codec;
// everything else (interceptors, error codes, procedure routing) is stock
// Connect.
package rpc

import (
	"context"
	"encoding/json"
	"net/http"

	"connectrpc.com/connect"
)

// jsonCodec marshals any value with encoding/json. Its name matches the
// Connect protocol's "application/json" content-type suffix.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}

// NewUnaryHandler builds a Connect unary handler for the procedure, wired to
// the JSON codec. It returns the route path and handler ready for a mux.
func NewUnaryHandler[Req, Res any](procedure string, fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error), opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
	return procedure, connect.NewUnaryHandler(procedure, fn, opts...)
}
