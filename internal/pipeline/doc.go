// Package pipeline provides a framework for evaluating a black hole in steps.
//
// A run moves through classification, model construction, horizon and
// orbit radii, ergosphere, redshift and potential probes, and
// thermodynamics. Each stage is implemented as a Step that receives the
// current run and records its outputs on it.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It lets one unsupported quantity degrade to a note instead of failing the run
//
// The pipeline supports both individual runs and batch processing (parameter
// sweeps) with concurrency control using errgroup.
package pipeline
