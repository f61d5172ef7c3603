// internal/writer/types.go
package writer

// StatusPlan is where one node's status block lives.
type StatusPlan struct {
	NodeID     string
	Endpoint   string
	UnitID     uint8
	BaseSlot   uint16
	DeviceName string
}

// RegisterClient is the exact contract the status writer uses.
// Both the Modbus and the Raw Ingest sinks implement it.
type RegisterClient interface {
	WriteRegisters(area byte, unitID uint8, addr uint16, regs []uint16) error
}

// AreaHoldingRegisters is the only area status blocks are written to.
const AreaHoldingRegisters byte = 3
