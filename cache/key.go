package cache

// DeriveKey converts an identifying string into a deterministic,
// non-negative cache key.
//
// The fingerprint is a multiply-by-31 rolling hash over the input's
// code points with 32-bit signed wraparound, shifted into the
// non-negative range by adding 2^31. The result is always in
// [0, 1<<32). Distinct inputs may collide; callers that need to reduce
// collision risk should namespace their inputs before hashing.
func DeriveKey(s string) int64 {
	var h int32
	for _, r := range s {
		h = h*31 + int32(r)
	}
	return int64(h) + 1<<31
}
