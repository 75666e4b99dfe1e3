// Package lr implements learning-rate scheduling policies for gradient-based training.
//
// # Reading Guide
//
// Start with these files:
//   - schedule.go: the Schedule contract, the Optimizer collaborator and the shared step counter
//   - plateau.go: the only metric-driven policy, modelled as a watching/cooling-down state machine
//   - simulate.go: the training-loop driver that turns a Schedule into a (step, rate) series
//
// # Policies
//
// Closed-form policies recompute their rate from the step counter alone and expose RateAt:
//   - StepLR, MultiStepLR: gamma^k decay at fixed intervals or milestones
//   - ConstantLR, LinearLR: warm-up style multipliers over the first total_iters steps
//   - ExponentialLR, PolynomialLR: continuous decay
//   - CosineAnnealingLR: one cosine half-period down to eta_min
//   - CyclicLR, OneCycleLR: phase derived from the counter by division and modulo
//
// CosineAnnealingWarmRestarts carries its current period length across restarts, and
// ReduceLROnPlateau carries the best metric seen and its cooldown state.
//
// # Configuration
//
// config.go maps YAML sweep files onto policy constructors (New), and sweep.go runs a
// base schedule plus its single-parameter variations. Output formatting lives in the
// report package; the lr package performs no I/O beyond loading sweep files.
package lr
