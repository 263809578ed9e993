// Package kterm implements the core terminal emulation engine: an
// escape-sequence parser, a per-session screen model with scrollback,
// a session multiplexer with a pane tree, and a gateway protocol for
// programmatic control.
//
// The package deliberately stops at the boundary described in its
// design notes: it never touches pixels, OS processes, keyboard
// scancodes, or config files. Those concerns belong to an embedder,
// which drives the engine through Terminal's exported methods and
// receives bytes/events back through the callbacks registered with
// SetResponseCallback, SetGatewayCallback, SetErrorCallback and
// SetSessionResizeCallback.
package kterm
