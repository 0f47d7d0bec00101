// Package peripheral defines the wire types exchanged with the edge agent
// through the shared buffer directory.
package peripheral

import "fmt"

const (
	// InterfaceUSB labels every record produced by this manager.
	InterfaceUSB = "USB"
	// Available is constant: records exist only for currently attached devices.
	Available = "True"
)

// Peripheral describes one discovered USB device. Optional fields are
// omitted from the JSON encoding entirely when empty, never written as null.
type Peripheral struct {
	Identifier   string   `json:"identifier"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Interface    string   `json:"interface"`
	Classes      []string `json:"classes"`
	Available    string   `json:"available"`
	Vendor       string   `json:"vendor,omitempty"`
	Product      string   `json:"product,omitempty"`
	DevicePath   string   `json:"device-path,omitempty"`
	SerialNumber string   `json:"serial-number,omitempty"`
	VideoDevice  string   `json:"video-device,omitempty"`
}

// Snapshot is the complete set of devices seen during one scan pass, keyed
// by identifier. Each snapshot is independent; it is never merged with a
// previous one. The vendor:product key is not unique when several identical
// devices are attached, in which case the last one scanned wins. Extending
// the key with bus/address would fix that but change the output shape the
// consumer relies on.
type Snapshot map[string]Peripheral

// Add stores p under its identifier.
func (s Snapshot) Add(p Peripheral) {
	s[p.Identifier] = p
}

// UnnamedLabel is the display name for devices whose product name cannot be
// resolved from the USB ID database.
func UnnamedLabel(identifier string) string {
	return fmt.Sprintf("UNNAMED USB Device with ID %s", identifier)
}
