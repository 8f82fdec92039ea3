// Package fdm provides the flight dynamics surface the simulation
// supervisor drives, together with a self contained reference engine.
//
// [Exec] implements the execution contract: frame stepping with [Exec.Run],
// the hold and suspended integration freeze bits, incremental hold,
// initial condition handling and a JSBSim style string property tree.
// [Builder] assembles a primed engine from a time step and a set of
// initial conditions.
//
// The vehicle model behind the contract is a point mass kinematic
// approximation, good enough to exercise the supervisory machinery but
// not an aerodynamic simulation. An external engine can replace it by
// implementing the same surface.
package fdm
