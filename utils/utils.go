package utils

// Distinct 去重，保持首次出现的顺序
func Distinct[T comparable](s []T) []T {
	var r = make([]T, 0, len(s))
	set := make(map[T]struct{}, len(s))
	for i := range s {
		if _, ok := set[s[i]]; !ok {
			r = append(r, s[i])
			set[s[i]] = struct{}{}
		}
	}
	return r
}
