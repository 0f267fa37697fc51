package functional

// Map applies fn to each element of slice and returns the results.
func Map[T any, U any](slice []T, fn func(T) U) []U {
	result := make([]U, len(slice))
	for i, item := range slice {
		result[i] = fn(item)
	}
	return result
}

// MapIndexed is Map with the element index passed to fn.
func MapIndexed[T any, U any](slice []T, fn func(int, T) U) []U {
	result := make([]U, len(slice))
	for i, item := range slice {
		result[i] = fn(i, item)
	}
	return result
}

// Filter returns the elements of slice that satisfy the predicate.
func Filter[T any](slice []T, predicate func(T) bool) []T {
	result := make([]T, 0)
	for _, item := range slice {
		if predicate(item) {
			result = append(result, item)
		}
	}
	return result
}

// Reduce folds slice into a single value starting from initial.
func Reduce[T any, U any](slice []T, initial U, fn func(U, T) U) U {
	accumulator := initial
	for _, item := range slice {
		accumulator = fn(accumulator, item)
	}
	return accumulator
}

// Find returns the first element that satisfies the predicate.
func Find[T any](slice []T, predicate func(T) bool) (T, bool) {
	for _, item := range slice {
		if predicate(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Contains reports whether slice holds target.
func Contains[T comparable](slice []T, target T) bool {
	for _, item := range slice {
		if item == target {
			return true
		}
	}
	return false
}

// Any returns true if any element in the slice satisfies the predicate.
func Any[T any](slice []T, predicate func(T) bool) bool {
	for _, item := range slice {
		if predicate(item) {
			return true
		}
	}
	return false
}
