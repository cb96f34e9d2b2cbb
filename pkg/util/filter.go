package util

// InPlaceFilter keeps the elements matching p, reusing the backing array
func InPlaceFilter[T any](s *[]T, p func(T) bool) int {
	removed := 0
	i := 0
	for _, e := range *s {
		if p(e) {
			(*s)[i] = e
			i++
		} else {
			removed++
		}
	}
	*s = (*s)[:i]

	return removed
}
