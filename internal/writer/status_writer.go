// internal/writer/status_writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/engine-watch/internal/status"
)

// StatusWriter is the delivery-only contract for engine status.
// It receives a snapshot and writes it verbatim.
// No logic, no interpretation.
type StatusWriter interface {
	WriteStatus(s status.Snapshot) error
}

// blockWriter is the concrete implementation used by the watcher.
type blockWriter struct {
	plan StatusPlan
	cli  RegisterClient

	needFull bool
	last     status.Snapshot
	nameRegs []uint16
}

// NewStatusWriter builds a status writer for one node's block.
func NewStatusWriter(plan StatusPlan, cli RegisterClient) (StatusWriter, error) {
	if cli == nil {
		return nil, fmt.Errorf("status writer: missing client for endpoint %s", plan.Endpoint)
	}
	if int(plan.BaseSlot) >= status.MaxSlots {
		return nil, fmt.Errorf("status writer: slot %d out of range", plan.BaseSlot)
	}

	return &blockWriter{
		plan:     plan,
		cli:      cli,
		needFull: true, // full re-assert on first successful write
		last:     status.Snapshot{StatusCode: status.CodeUnclassified},
		nameRegs: status.EncodeDeviceName(plan.DeviceName),
	}, nil
}

// WriteStatus delivers a snapshot into status memory.
// On any write failure, the next call re-asserts the full block.
func (sw *blockWriter) WriteStatus(s status.Snapshot) error {
	baseAddr := sw.baseAddr()
	unitID := sw.plan.UnitID

	// ------------------------------------------------------------
	// Full block write (identity re-assert)
	// ------------------------------------------------------------
	if sw.needFull {
		regs := status.Encode(s, sw.nameRegs)

		if err := sw.cli.WriteRegisters(AreaHoldingRegisters, unitID, baseAddr, regs); err != nil {
			return fmt.Errorf("status writer: full block write failed: %w", err)
		}

		sw.needFull = false
		sw.last = s
		return nil
	}

	var errs []string

	// Slot 0 - status_code
	if sw.last.StatusCode != s.StatusCode {
		if err := sw.writeSlot(status.SlotStatusCode, s.StatusCode); err != nil {
			errs = append(errs, fmt.Sprintf("slot0 status write failed: %v", err))
		} else {
			sw.last.StatusCode = s.StatusCode
		}
	}

	// Slot 1 - last_error_code
	if sw.last.LastErrorCode != s.LastErrorCode {
		if err := sw.writeSlot(status.SlotLastErrorCode, s.LastErrorCode); err != nil {
			errs = append(errs, fmt.Sprintf("slot1 last_error write failed: %v", err))
		} else {
			sw.last.LastErrorCode = s.LastErrorCode
		}
	}

	// Slot 2 - seconds_not_validated
	if sw.last.SecondsNotValidated != s.SecondsNotValidated {
		if err := sw.writeSlot(status.SlotSecondsNotValidated, s.SecondsNotValidated); err != nil {
			errs = append(errs, fmt.Sprintf("slot2 seconds write failed: %v", err))
		} else {
			sw.last.SecondsNotValidated = s.SecondsNotValidated
		}
	}

	if len(errs) > 0 {
		// Any partial failure introduces doubt: re-assert on next call.
		sw.needFull = true
		return errors.New("status writer: " + strings.Join(errs, " | "))
	}

	return nil
}

func (sw *blockWriter) writeSlot(slot int, v uint16) error {
	return sw.cli.WriteRegisters(
		AreaHoldingRegisters,
		sw.plan.UnitID,
		sw.baseAddr()+uint16(slot),
		[]uint16{v},
	)
}

func (sw *blockWriter) baseAddr() uint16 {
	// Each node owns a fixed SlotsPerDevice block.
	return sw.plan.BaseSlot * status.SlotsPerDevice
}
