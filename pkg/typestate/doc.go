// Package typestate encodes a peripheral's lifecycle state in the Go type
// system so that an operation called in the wrong state does not build.
//
// A peripheral P is wrapped in a Wrapper[P, S] where S is a zero-size state
// tag. The tag never exists as data; it only parameterizes the wrapper type.
// Three capability facts gate what the compiler accepts:
//
//   - StateOf[P]: S is a state P may be wrapped in.
//   - InitialOf[P]: S is the state New yields.
//   - EdgeOf[P, From, To]: the transition From -> To is legal for P.
//
// Facts are plain methods on generated tag types. A call such as
// Transition[edge, Running](w) only compiles when edge declares
// Allow(*P, From, Running) for the From that w is tagged with.
//
// # Generated API
//
// Writing tags and edges by hand is possible but tedious. The tstategen
// command expands a YAML peripheral specification into tags, edges, one
// concrete wrapper type per state and one method per transition:
//
//	bus := i2cbus.NewI2CBus(42).
//	    Start(nil).
//	    Configure(1000, nil).
//	    Run(nil)
//
// Calling Configure on the value returned by NewI2CBus does not compile,
// because I2CBusStop has no Configure method.
//
// # Ownership
//
// A transition consumes its input. Go cannot prevent reuse of the old value,
// so each wrapper records the generation of its cell; using a consumed
// wrapper panics with ErrConsumed.
//
// # Observers
//
// Observers registered with WithObserver are told about every transition
// after the tag flips and before the caller's callback runs. The registry
// and log packages provide observers that mirror transitions at runtime.
package typestate
