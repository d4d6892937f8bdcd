// Package fabric holds constants shared by the bus-fabric components.
package fabric

// ErrorData is the value returned on the read-data lines when a bus cycle
// terminates with an error, or when a master is disconnected from the fabric.
// Well known to anyone who has stared at a hung memory dump.
const ErrorData uint64 = 0xDEC0ADBA
