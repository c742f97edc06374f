package cli

// Linspace returns n evenly spaced samples from start to end inclusive,
// matching numpy's linspace() — adapted from the teacher's
// ellipseFuncs.go helper of the same name, reused here to build the
// altitude grid the collaborator programs evaluate a WeightFunction on.
func Linspace(start, end float64, n int) []float64 {
	if n <= 1 {
		return []float64{start}
	}
	step := (end - start) / float64(n-1)
	x := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = start + float64(i)*step
	}
	return x
}
