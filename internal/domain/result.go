package domain

// Result carries a best-effort value. Value is always well-formed: on
// failure it holds the empty fallback and Err records why.
type Result[T any] struct {
	Value T
	Err   error
}

// OK reports whether the value came from a successful fetch
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Success wraps a fetched value
func Success[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Fallback wraps the empty value returned in place of a failed fetch
func Fallback[T any](empty T, err error) Result[T] {
	return Result[T]{Value: empty, Err: err}
}
