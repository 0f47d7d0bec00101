package usbscan

import "github.com/google/gousb"

// DeviceSource yields the descriptors of every USB device currently
// attached to the host. Implementations must treat "no devices" as an empty
// slice, not an error. A non-nil error may accompany a partial slice.
type DeviceSource interface {
	Devices() ([]*gousb.DeviceDesc, error)
}

// ContextSource enumerates devices from a live gousb context.
type ContextSource struct {
	Ctx *gousb.Context
}

// Devices walks the bus with an always-false open filter, which enumerates
// descriptors without opening any device.
func (s ContextSource) Devices() ([]*gousb.DeviceDesc, error) {
	var descs []*gousb.DeviceDesc
	_, err := s.Ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		descs = append(descs, desc)
		return false
	})
	return descs, err
}
