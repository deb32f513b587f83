// Package ipc is the debug bridge between a UI-test driver process and the
// app process.
//
// A [Server] listens on a unix socket named after a channel and answers one
// request at a time through gRPC with a raw-bytes codec; the payloads are
// JSON envelopes. A [Client] connects by channel name, polling until a
// deadline, and sends requests with a short per-request timeout.
//
// Two roles are built on top: the app server runs UI-test helpers
// ([NewAppServer]) and the driver server answers requests forwarded by the
// app's [ForwardingTransport] ([NewDriverServer]).
//
// The bridge only exists in debug builds. With the "release" build tag every
// constructor returns [ErrDisabled].
package ipc
