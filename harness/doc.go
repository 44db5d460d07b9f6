// Package harness measures how the parallel engine scales against the
// sequential one.
//
// Strong scaling keeps the problem size fixed while the worker count grows;
// weak scaling grows the point count with the workers. Every row reports
// mean and population standard deviation of the wall-clock time of both
// engines, the speedup mean(seq)/mean(par), the efficiency speedup/workers
// and the speedup predicted by Amdahl's (strong) or Gustafson's (weak) law
// for the configured parallel fraction.
//
//	rows, err := harness.StrongScaling(ctx, harness.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	_ = harness.WriteCSV(os.Stdout, rows)
package harness
