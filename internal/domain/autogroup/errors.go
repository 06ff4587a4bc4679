// internal/domain/autogroup/errors.go
package autogroup

import "fmt"

// InvalidGroupError is returned from construction when neither
// hydration path (by id, by raw record) yields a record passing
// validation. It carries the offending input for diagnostics.
//
// This is the only failure this package models as an error; every
// other "can't do that" outcome (group not an autogroup, group set
// missing, entity not persisted, member already present) is a boolean
// no-op result. Port failures pass through unchanged.
type InvalidGroupError struct {
	Input any
}

func (e *InvalidGroupError) Error() string {
	return fmt.Sprintf("autogroup: not a valid group record: %v", e.Input)
}
