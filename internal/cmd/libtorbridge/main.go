// Command libtorbridge is the shared library loaded by the JVM to run
// embedded tor in-process. Build it with:
//
//	go build -buildmode=c-shared -tags ooni_libtor,ooni_jni ./internal/cmd/libtorbridge
//
// The host invokes the runLines native method on a thread it donates to
// tor for the whole session. It must not invoke it concurrently.
package main

func main() {
	// nothing: we're a c-shared library
}
