// Package plugin defines the Grammar Plugin contract: the boundary between
// the highlight engine and a single language's parser, whether that parser
// is linked in natively or running inside a WASM component.
//
// A Plugin is stateless and safe for concurrent use; the state machine
// lives in the Session it creates. Sessions are not safe for concurrent
// use — the engine never calls into the same session from two goroutines
// at once.
package plugin

import (
	"context"
	"errors"

	"go.gopad.dev/highlight/types"
)

// ErrProtocolViolation is wrapped into errors raised when a plugin's result
// breaks the contract a well-behaved implementation must honor: offsets
// outside the source buffer, spans with Start > End, or records with missing
// or mistyped fields. The number of spans or injections in a result is not
// checked. The engine treats
// a protocol violation the same as an unavailable language: it drops the
// plugin's contribution and logs a warning, it never panics or aborts the
// whole highlight.
var ErrProtocolViolation = errors.New("plugin: protocol violation")

// ErrSessionState is returned when a Session method is called from a state
// that doesn't permit it, e.g. calling Parse or ApplyEdit on a session
// that has never been given text.
var ErrSessionState = errors.New("plugin: invalid session state")

// SessionState is a session's lifecycle state: a session
// starts Empty, becomes Ready once it has text, moves to Parsing for the
// duration of a Parse call, and returns to Ready when that call completes
// or is cancelled. FreeSession is valid from any state.
type SessionState int

const (
	StateEmpty SessionState = iota
	StateReady
	StateParsing
)

func (s SessionState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateReady:
		return "ready"
	case StateParsing:
		return "parsing"
	default:
		return "unknown"
	}
}

// Plugin is one language's grammar, exposed through the Grammar Plugin ABI:
// language-id, injection-languages, create-session, free-session, and,
// through Session, set-text, apply-edit, parse, and cancel.
type Plugin interface {
	// LanguageID is the canonical name the provider registered this plugin
	// under, e.g. "go" or "javascript".
	LanguageID() string

	// InjectionLanguages lists the languages this grammar's injection query
	// may statically request. Languages chosen dynamically from captured
	// text (e.g. an HTML <script type="..."> attribute) are not enumerable
	// ahead of time and are not included.
	InjectionLanguages() []string

	// CreateSession returns a new Session in StateEmpty.
	CreateSession() Session

	// FreeSession releases any resources held by a session created by this
	// plugin. Calling any Session method afterward is a programmer error.
	FreeSession(Session)
}

// Session is one parse buffer's worth of state for a single Plugin. The
// stateless engine creates a fresh session for every layer; the document
// store keeps one session per language per document and reuses it, one
// layer at a time, for every layer of that language.
type Session interface {
	// State reports the session's current lifecycle state.
	State() SessionState

	// SetText replaces the session's buffer wholesale and discards any
	// previous parse tree. Transitions Empty/Ready -> Ready.
	SetText(source []byte) error

	// ApplyEdit narrows an incremental edit to the session's buffer so the
	// next Parse can reuse the previous tree. The caller is responsible for
	// calling SetText first; ApplyEdit from StateEmpty is ErrSessionState.
	ApplyEdit(edit types.Edit, newSource []byte) error

	// Parse runs the grammar over the current buffer and returns every
	// highlight span and injection the grammar's queries produced, in the
	// session's own buffer coordinates. Parse honors ctx cancellation
	// cooperatively: a cancelled context causes Parse to return
	// context.Canceled as soon as the underlying parser next checks its
	// cancellation flag, not instantly.
	Parse(ctx context.Context) (types.ParseResult, error)

	// Cancel requests that an in-flight Parse stop early. It is a no-op if
	// no Parse is running. Cancel never itself transitions the session out
	// of StateParsing; the in-flight Parse call does that when it returns.
	Cancel()
}
