package domain

// Slices is the number of slots on the wheel.
const Slices = 16

func Clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// Shuffle returns a Fisher-Yates shuffled copy of items.
func Shuffle[T any](items []T, rng RNG) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// TotalMove is the net displacement of a round. Each number is reduced
// modulo the wheel size before summing.
func TotalMove(p, e int) int {
	return TotalMoveOn(p, e, Slices)
}

func TotalMoveOn(p, e, slices int) int {
	return mod(mod(p, slices)+mod(e, slices), slices)
}

// Advance moves a token position by steps around the wheel.
func Advance(token, steps int) int {
	return mod(token+steps, Slices)
}

func mod(n, m int) int {
	r := n % m
	if r < 0 {
		r += m
	}
	return r
}
