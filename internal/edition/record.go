package edition

// Recorder is implemented by input shapes that can express themselves as a
// Record. Implementations list their keys explicitly and leave out every
// field that was not provided.
type Recorder interface {
	Record() Record
}

// Put sets key to *v when v is provided.
func Put[T any](r Record, key string, v *T) {
	if v != nil {
		r[key] = *v
	}
}

// PutList sets key when xs is non-nil. An empty, non-nil slice is an explicit
// empty list.
func PutList[T any](r Record, key string, xs []T, elem func(T) any) {
	if xs == nil {
		return
	}
	out := make([]any, len(xs))
	for i, x := range xs {
		out[i] = elem(x)
	}
	r[key] = out
}

// Scalar is the identity element mapper for PutList.
func Scalar[T any](x T) any {
	return x
}

// AsRecord is the element mapper for lists of nested sections.
func AsRecord[S Recorder](s S) any {
	return s.Record()
}
