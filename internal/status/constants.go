// internal/status/constants.go
package status

// Engine Status Block layout constants.
// These values define the published layout and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerDevice is the fixed number of registers per node.
const SlotsPerDevice = 20

// MaxSlots is the number of node blocks addressable in one register space.
const MaxSlots = 65536 / SlotsPerDevice

// ---- SLOT INDICES ----

// SlotStatusCode holds the engine lifecycle status.
const SlotStatusCode = 0

// SlotLastErrorCode holds the code of the last classified probe failure.
const SlotLastErrorCode = 1

// SlotSecondsNotValidated holds how long (in seconds) the node has been anything but validated.
const SlotSecondsNotValidated = 2

// ---- RESERVED RANGE ----

// Slots 3-10 are reserved for future use.
const SlotReservedStart = 3
const SlotReservedEnd = 10

// ---- DEVICE NAME ----

// SlotDeviceNameStart is the first slot used for the device name.
// Device name is always placed at the END of the status block.
const SlotDeviceNameStart = 11

// SlotDeviceNameSlots is the number of slots reserved for the device name.
const SlotDeviceNameSlots = 8

// SlotDeviceNameEnd is the last slot used for the device name (inclusive).
const SlotDeviceNameEnd = SlotDeviceNameStart + SlotDeviceNameSlots - 1

// ---- LIMITS ----

// DeviceNameMaxChars is the maximum number of ASCII characters stored for device name.
const DeviceNameMaxChars = 16

// MaxSeconds is where SlotSecondsNotValidated saturates.
const MaxSeconds uint16 = 65535

// ---- STATUS CODES ----
// Codes 1-7 are engine.Status values verbatim.

// CodeUnclassified is the boot state before the first classification.
const CodeUnclassified uint16 = 0

// CodeClassifyFailed marks a classification that ended in a local error.
const CodeClassifyFailed uint16 = 0xFF
