/*
Package server implements msgpack IPC for morphological analysis services.

The server reads analysis requests from stdin and writes responses to
stdout, both binary msgpack encoded, so indexers and editor integrations
can drive the analyzer as a child process. Messages are processed
synchronously; each request carries an ID echoed in its response.

A request names the text to analyze:

	{"id": "req_001", "t": "大根を食べる"}

The response carries the tokens of the minimum-cost segmentation, in order,
with rune offsets, the cumulative path cost and the rendered feature
string, plus timing info:

	{"id": "req_001", "tk": [...], "c": 5, "t": 210}

Analysis faults are reported in the response's err field with an empty
token list, which keeps "failed" distinguishable from "legitimately no
tokens".
*/
package server

// AnalyzeRequest - minimal analysis request
type AnalyzeRequest struct {
	ID   string `msgpack:"id"`
	Text string `msgpack:"t"`
}

// TokenPayload - one emitted token
type TokenPayload struct {
	Surface       string `msgpack:"s"`
	Start         int    `msgpack:"b"`
	End           int    `msgpack:"e"`
	Cost          int64  `msgpack:"c"`
	Feature       string `msgpack:"f"`
	SentenceStart bool   `msgpack:"n,omitempty"`
}

// AnalyzeResponse - analysis response
type AnalyzeResponse struct {
	ID        string         `msgpack:"id"`
	Tokens    []TokenPayload `msgpack:"tk"`
	Count     int            `msgpack:"c"`
	TimeTaken int64          `msgpack:"t"`
	Error     string         `msgpack:"err,omitempty"`
}

// StatusResponse - lifecycle notifications such as the ready handshake
type StatusResponse struct {
	Status string `msgpack:"status"`
}
