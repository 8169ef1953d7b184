//go:build ooni_libtor && ooni_jni && cgo

package main

//
// #include <jni.h>
//
import "C"

import (
	"unsafe"

	"github.com/apex/log"
	"github.com/ooni/torbridge/internal/hostenv"
	"github.com/ooni/torbridge/internal/jnienv"
	"github.com/ooni/torbridge/internal/libtor"
	"github.com/ooni/torbridge/internal/runtimex"
	"github.com/ooni/torbridge/internal/torbridge"
)

// Java_io_matthewnelson_kmp_tor_KmpTorLoaderJni_runLines implements
//
//	private external fun runLines(lines: List<String>): String
//
// The lines are tor command line tokens already prepared by the host (e.g.,
// ["--ControlPortWriteToFile", "/path/to/file"]). The returned string is
// empty on success; otherwise, it contains the message the host should
// throw as an exception.
//
//export Java_io_matthewnelson_kmp_tor_KmpTorLoaderJni_runLines
func Java_io_matthewnelson_kmp_tor_KmpTorLoaderJni_runLines(
	env *C.JNIEnv, clazz C.jclass, lines C.jobject) C.jstring {
	jenv := jnienv.New(unsafe.Pointer(env))
	api, good := libtor.MaybeAPI()
	runtimex.Assert(good, "libtorbridge: built without libtor")
	controller := &torbridge.Controller{
		API:    api,
		Logger: log.Log,
	}
	return jstring(controller.RunLines(jenv, unsafe.Pointer(lines)))
}

// jstring converts the result of [torbridge.Controller.RunLines] to a
// jstring. A nil result becomes NULL, which the JVM sees as a null String.
func jstring(result hostenv.Object) C.jstring {
	ptr, good := result.(unsafe.Pointer)
	if !good {
		return nil
	}
	return C.jstring(ptr)
}
