package utils

// Ptr returns a pointer to v. Used for optional wire fields such as the
// numeric user id, where absent and zero must stay distinguishable.
func Ptr[T any](v T) *T {
	return &v
}

// Value dereferences v, returning the zero value for a nil pointer.
func Value[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}
