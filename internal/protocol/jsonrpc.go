package protocol

import "encoding/json"

// Version is the JSON-RPC version stamped on every response.
const Version = "2.0"

// Standard JSON-RPC error codes used by the dispatcher.
const (
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
)

// Request is a decoded incoming message. HasID distinguishes a notification
// from a request whose id is JSON null.
type Request struct {
	ID     json.RawMessage
	HasID  bool
	Method string
	Params json.RawMessage
}

// ParseRequest extracts the routing fields from a message body. ok is false
// when the body is not an object or carries no string method.
func ParseRequest(body json.RawMessage) (Request, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return Request{}, false
	}

	var req Request
	if id, found := fields["id"]; found {
		req.ID = id
		req.HasID = true
	}

	raw, found := fields["method"]
	if !found {
		return req, false
	}
	var method *string
	if err := json.Unmarshal(raw, &method); err != nil || method == nil {
		return req, false
	}
	req.Method = *method
	req.Params = fields["params"]
	return req, true
}

// Response is an outgoing reply. Exactly one of Result and Error is set.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is the JSON-RPC error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Success builds a result response for id.
func Success(id json.RawMessage, result any) Response {
	return Response{JSONRPC: Version, ID: id, Result: result}
}

// Failure builds an error response for id.
func Failure(id json.RawMessage, code int, message string) Response {
	return Response{JSONRPC: Version, ID: id, Error: &Error{Code: code, Message: message}}
}
