package dpf

// EvalFull evaluates key k at output i over its entire input domain
// [0, 2^n): a specialization of interval evaluation over the whole range.
// Exists as its own entry point (rather than requiring callers to compute
// 2^n themselves) because it is the common case for small domains
// (prefix/segment parity gadgets, full-domain correctness tests).
func EvalFull(k *Key, i int, mem *IntervalMemoizer) ([]Value, error) {
	return EvalInterval(k, i, 0, uint64(1)<<uint(k.n), mem)
}
