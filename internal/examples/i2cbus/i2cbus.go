// Package i2cbus is a generated typestate driver for a stand-in I2C bus.
// The API in i2c_bus_gen.go is produced from i2cbus.yaml.
package i2cbus

import (
	"io"
	"os"
)

//go:generate go run ../../../cmd/tstategen -spec i2cbus.yaml -diagram i2cbus.md

// out receives the effect messages of transitions.
var out io.Writer = os.Stdout

// SetOutput sends effect messages to w and returns a function that restores
// the previous writer. It is not safe to call while a transition runs.
func SetOutput(w io.Writer) (restore func()) {
	prev := out
	out = w
	return func() { out = prev }
}
