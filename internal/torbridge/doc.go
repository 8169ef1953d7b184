// Package torbridge runs embedded tor on behalf of a host runtime.
//
// A call receives the tor command line prepared by the host, verifies it
// by running tor with --verify-config, and then runs tor with the same
// command line, blocking the calling thread until tor exits. The outcome
// is a single string: empty on success, otherwise a diagnostic that the
// host is expected to surface as an exception.
//
// The package keeps no state between calls. Because tor itself is
// process-wide state, the host must not call into the bridge from more
// than one thread at a time.
package torbridge
