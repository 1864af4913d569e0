package utils

// Ptr returns a pointer to v. Handy for filling optional struct fields.
func Ptr[T any](v T) *T {
	return &v
}
