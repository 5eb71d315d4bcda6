// Package knapsack models 0/1 knapsack instances: a weight budget
// (capacity) and a set of items, each with a non-negative weight and value.
//
// 🚀 What lives here?
//
//	• Instance    immutable, validated problem description (New / MustNew)
//	• Evaluators  Weight(x), Value(x), Feasible(x, tol) for selection vectors
//	• Generator   seeded random instances (integer or continuous)
//	• Codec       JSON / YAML encode & decode, LoadFile / SaveFile
//
// ⚙️ Usage:
//
//	in, err := knapsack.New(3, 5, []float64{2, 3, 4}, []float64{3, 4, 5})
//	if err != nil {
//		// ErrDimensionMismatch, ErrNegativeWeight, ...
//	}
//
//	gen, _ := knapsack.NewGenerator(knapsack.DefaultGeneratorOptions())
//	random, _ := gen.Generate()
//
// Errors are package sentinels; match with errors.Is.
package knapsack
