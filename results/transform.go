package results

// Map applies fn to the success value of r. A failure is passed through and fn is not called.
func Map[T, U, E any](r Result[T, E], fn func(T) U) Result[U, E] {
	if !r.ok {
		return Err[U](r.err)
	}
	return Ok[U, E](fn(r.val))
}

// MapErr applies fn to the failure value of r. A success is passed through and fn is not called.
func MapErr[T, E, F any](r Result[T, E], fn func(E) F) Result[T, F] {
	if r.ok {
		return Ok[T, F](r.val)
	}
	return Err[T](fn(r.err))
}

// AndThen chains a fallible step onto r. fn runs only when r is a success and its
// Result is returned as is. A failure short-circuits without calling fn.
func AndThen[T, U, E any](r Result[T, E], fn func(T) Result[U, E]) Result[U, E] {
	if !r.ok {
		return Err[U](r.err)
	}
	return fn(r.val)
}

// OrElse is the failure side counterpart of AndThen: fn runs only when r is a failure.
func OrElse[T, E, F any](r Result[T, E], fn func(E) Result[T, F]) Result[T, F] {
	if r.ok {
		return Ok[T, F](r.val)
	}
	return fn(r.err)
}

// Match calls exactly one of onSuccess and onFailure, depending on the variant of r,
// and returns what it returns.
func Match[T, E, U any](r Result[T, E], onSuccess func(T) U, onFailure func(E) U) U {
	if r.ok {
		return onSuccess(r.val)
	}
	return onFailure(r.err)
}

// Collect turns a slice of Results into a Result of a slice.
// The first failure in rs is returned; otherwise every success value in order.
func Collect[T, E any](rs []Result[T, E]) Result[[]T, E] {
	vals := make([]T, 0, len(rs))
	for _, r := range rs {
		if !r.ok {
			return Err[[]T](r.err)
		}
		vals = append(vals, r.val)
	}
	return Ok[[]T, E](vals)
}

// Partition splits rs into its success values and its failure values, keeping their order.
func Partition[T, E any](rs []Result[T, E]) ([]T, []E) {
	var (
		oks  []T
		errs []E
	)

	for _, r := range rs {
		if r.ok {
			oks = append(oks, r.val)
		} else {
			errs = append(errs, r.err)
		}
	}

	return oks, errs
}
