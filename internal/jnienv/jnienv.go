//go:build ooni_jni && cgo

package jnienv

//
// #include <jni.h>
// #include <stdlib.h>
//
// static jboolean jnienvCheckException(JNIEnv *env) {
//     if ((*env)->ExceptionCheck(env)) {
//         (*env)->ExceptionClear(env);
//         return JNI_TRUE;
//     }
//     return JNI_FALSE;
// }
//
// static jboolean jnienvIsInstanceOf(JNIEnv *env, jobject obj, const char *className) {
//     if (obj == NULL) {
//         return JNI_FALSE;
//     }
//     jclass clazz = (*env)->FindClass(env, className);
//     if (clazz == NULL) {
//         jnienvCheckException(env);
//         return JNI_FALSE;
//     }
//     jboolean result = (*env)->IsInstanceOf(env, obj, clazz);
//     (*env)->DeleteLocalRef(env, clazz);
//     return result;
// }
//
// static jmethodID jnienvListMethod(JNIEnv *env, const char *name, const char *sig) {
//     jclass clazz = (*env)->FindClass(env, "java/util/List");
//     if (clazz == NULL) {
//         jnienvCheckException(env);
//         return NULL;
//     }
//     jmethodID mid = (*env)->GetMethodID(env, clazz, name, sig);
//     (*env)->DeleteLocalRef(env, clazz);
//     if (mid == NULL) {
//         jnienvCheckException(env);
//     }
//     return mid;
// }
//
// static jint jnienvListSize(JNIEnv *env, jobject list) {
//     jmethodID mid = jnienvListMethod(env, "size", "()I");
//     if (mid == NULL) {
//         return -1;
//     }
//     jint size = (*env)->CallIntMethod(env, list, mid);
//     if (jnienvCheckException(env)) {
//         return -1;
//     }
//     return size;
// }
//
// static jobject jnienvListGet(JNIEnv *env, jobject list, jint idx, jboolean *failed) {
//     *failed = JNI_TRUE;
//     jmethodID mid = jnienvListMethod(env, "get", "(I)Ljava/lang/Object;");
//     if (mid == NULL) {
//         return NULL;
//     }
//     jobject value = (*env)->CallObjectMethod(env, list, mid, idx);
//     if (jnienvCheckException(env)) {
//         return NULL;
//     }
//     *failed = JNI_FALSE;
//     return value;
// }
//
// static jsize jnienvStringLength(JNIEnv *env, jstring s) {
//     return (*env)->GetStringLength(env, s);
// }
//
// static jboolean jnienvStringRegion(JNIEnv *env, jstring s, jsize len, jchar *buf) {
//     (*env)->GetStringRegion(env, s, 0, len, buf);
//     return !jnienvCheckException(env);
// }
//
// static jstring jnienvNewString(JNIEnv *env, const jchar *buf, jsize len) {
//     jstring s = len > 0 ? (*env)->NewString(env, buf, len) : (*env)->NewStringUTF(env, "");
//     if (jnienvCheckException(env)) {
//         return NULL;
//     }
//     return s;
// }
//
// static void jnienvDeleteLocalRef(JNIEnv *env, jobject obj) {
//     (*env)->DeleteLocalRef(env, obj);
// }
//
import "C"

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf16"
	"unsafe"

	"github.com/ooni/torbridge/internal/hostenv"
)

// ErrJNI indicates that a JNI call failed or raised a Java exception.
var ErrJNI = fmt.Errorf("%w: JNI call failed", hostenv.ErrBoundaryType)

// Env implements [hostenv.Env] and [hostenv.Releaser] using JNI. Please,
// use [New] to construct. An Env is only valid on the thread and for the
// duration of the native call that received the JNIEnv pointer.
type Env struct {
	env *C.JNIEnv
}

var (
	_ hostenv.Env      = &Env{}
	_ hostenv.Releaser = &Env{}
)

// New wraps the JNIEnv pointer received by a native method.
func New(env unsafe.Pointer) *Env {
	return &Env{env: (*C.JNIEnv)(env)}
}

// object converts a host object to a jobject.
func object(value hostenv.Object) (C.jobject, bool) {
	ptr, good := value.(unsafe.Pointer)
	if !good || ptr == nil {
		return nil, false
	}
	return C.jobject(ptr), true
}

// ListSize implements hostenv.Env.
func (e *Env) ListSize(list hostenv.Object) (int, error) {
	jlist, good := object(list)
	if !good || C.jnienvIsInstanceOf(e.env, jlist, cstr("java/util/List")) == C.JNI_FALSE {
		return 0, hostenv.ErrNotAList
	}
	size := C.jnienvListSize(e.env, jlist)
	if size < 0 {
		return 0, fmt.Errorf("%w: List.size", ErrJNI)
	}
	return int(size), nil
}

// ListGet implements hostenv.Env.
func (e *Env) ListGet(list hostenv.Object, idx int) (hostenv.Object, error) {
	jlist, good := object(list)
	if !good {
		return nil, hostenv.ErrNotAList
	}
	if idx < 0 || idx > math.MaxInt32 {
		return nil, hostenv.ErrIndexOutOfRange
	}
	var failed C.jboolean
	value := C.jnienvListGet(e.env, jlist, C.jint(idx), &failed)
	if failed != C.JNI_FALSE {
		return nil, fmt.Errorf("%w: List.get(%d)", ErrJNI, idx)
	}
	return unsafe.Pointer(value), nil
}

// GetString implements hostenv.Env.
func (e *Env) GetString(value hostenv.Object) (string, error) {
	jvalue, good := object(value)
	if !good || C.jnienvIsInstanceOf(e.env, jvalue, cstr("java/lang/String")) == C.JNI_FALSE {
		return "", hostenv.ErrNotAString
	}
	size := C.jnienvStringLength(e.env, C.jstring(jvalue))
	if size <= 0 {
		return "", nil
	}
	buf := make([]uint16, int(size))
	// Note: passing Go memory not containing Go pointers to C is fine
	if C.jnienvStringRegion(e.env, C.jstring(jvalue), size, (*C.jchar)(unsafe.Pointer(&buf[0]))) == C.JNI_FALSE {
		return "", fmt.Errorf("%w: GetStringRegion", ErrJNI)
	}
	return string(utf16.Decode(buf)), nil
}

// errStringTooLong indicates the result does not fit a jsize.
var errStringTooLong = errors.New("jnienv: string too long")

// NewString implements hostenv.Env.
func (e *Env) NewString(s string) (hostenv.Object, error) {
	buf := utf16.Encode([]rune(s))
	if len(buf) > math.MaxInt32 {
		return nil, errStringTooLong
	}
	var ptr *C.jchar
	if len(buf) > 0 {
		ptr = (*C.jchar)(unsafe.Pointer(&buf[0]))
	}
	jstr := C.jnienvNewString(e.env, ptr, C.jsize(len(buf)))
	if jstr == nil {
		return nil, fmt.Errorf("%w: NewString", ErrJNI)
	}
	return unsafe.Pointer(jstr), nil
}

// Release implements hostenv.Releaser by deleting the local reference
// returned by ListGet, which keeps us within the JVM local refs budget.
func (e *Env) Release(value hostenv.Object) {
	if jvalue, good := object(value); good {
		C.jnienvDeleteLocalRef(e.env, jvalue)
	}
}

// classNames contains C copies of the class names we use. They live
// for the whole lifetime of the process.
var classNames = map[string]*C.char{
	"java/util/List":   C.CString("java/util/List"),
	"java/lang/String": C.CString("java/lang/String"),
}

func cstr(name string) *C.char {
	return classNames[name]
}
