// Package jnienv implements [hostenv.Env] on top of a JNIEnv pointer.
//
// Build with the `ooni_jni` build tag and make sure jni.h is in the
// include path, e.g., CGO_CFLAGS="-I$JAVA_HOME/include -I$JAVA_HOME/include/linux".
// On Android, the NDK sysroot already provides jni.h.
//
// Objects crossing this boundary are jobject references represented as
// unsafe.Pointer values. Pending Java exceptions are always cleared and
// reported as errors, so that nothing unwinds into the JVM.
package jnienv
