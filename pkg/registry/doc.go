// Package registry is a runtime shadow ledger for peripherals whose state
// changes where the type checker cannot see them, such as interrupt
// handlers.
//
// A Registry records, per peripheral identifier:
//   - the last known state (last write wins),
//   - sleep, restore and access hooks in registration order,
//   - the interrupt handler names ever enabled for it,
//
// plus one global set of currently active interrupt handlers.
//
// The registry observes; it never enforces a transition graph. Check
// reports whether the recorded state matches an expectation, returning
// false for peripherals it has never seen.
//
// A Registry is an explicit service object: create one at application
// start with New and pass it to the drivers and interrupt handlers that
// need it. All methods are safe for concurrent use.
//
// Typed transitions can be mirrored automatically:
//
//	reg := registry.New(registry.DefaultConfig())
//	reg.Enroll("i2c0")
//	bus := i2cbus.NewI2CBus(0, typestate.WithObserver(reg.Track("i2c0")))
package registry
