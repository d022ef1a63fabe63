/*
Package server implements msgpack IPC for anagram subset queries.

Clients write msgpack encoded requests to the server's stdin and read msgpack
responses from its stdout, one value per message, in request order. The first
value written by the server is a ready marker:

	{"status": "ready"}

A find request names the letters to use and optional filters:

	{"id": "req_001", "p": "ants", "l": 0, "m": 3, "x": "a.t"}

The server answers with the sorted words and the query time in microseconds:

	{"id": "req_001", "w": ["ant"], "c": 1, "t": 87}

Omitting "m" uses the configured minimum length. The "stats" action returns the
shape of the loaded index:

	{"id": "s1", "action": "stats"}

Failed requests get an error value instead:

	{"id": "req_002", "e": "pattern exceeds maximum length of 64", "c": 400}
*/
package server

// Supported request actions. An empty action means ActionFind.
const (
	ActionFind   = "find"
	ActionStats  = "stats"
	ActionHealth = "health"
)

// Request is a single IPC message from the client.
type Request struct {
	ID        string `msgpack:"id"`
	Action    string `msgpack:"action,omitempty"`
	Pattern   string `msgpack:"p,omitempty"`
	Length    int    `msgpack:"l,omitempty"`
	MinLength *int   `msgpack:"m,omitempty"`
	Match     string `msgpack:"x,omitempty"`
}

// FindResponse carries the words found for a find request.
type FindResponse struct {
	ID        string   `msgpack:"id"`
	Words     []string `msgpack:"w"`
	Count     int      `msgpack:"c"`
	Truncated bool     `msgpack:"tr,omitempty"`
	TimeTaken int64    `msgpack:"t"`
}

// StatsResponse describes the loaded index.
type StatsResponse struct {
	ID            string `msgpack:"id"`
	Status        string `msgpack:"status"`
	Words         int    `msgpack:"words"`
	Signatures    int    `msgpack:"signatures"`
	LargestBucket int    `msgpack:"largest_bucket"`
}

// StatusResponse is the ready marker and the health answer.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for a failed request.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
