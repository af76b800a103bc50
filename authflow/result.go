// Package authflow runs the OAuth login handshake: it opens an
// authorization window, watches for it closing, and waits for the single
// completion message posted by the callback side once the code exchange
// has landed (or failed).
package authflow

// ResultType is the designated completion message type. Messages of any
// other type are ignored by the flow.
const ResultType = "oauth_result"

// Result is the cross-window completion envelope. An empty Message
// signals success; anything else is the failure reason.
type Result struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
