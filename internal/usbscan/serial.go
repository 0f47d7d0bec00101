package usbscan

import "strings"

// serialNumber scans udevadm attribute-walk output for a serial attribute.
// Serial lines mentioning ".usb" belong to the USB controller rather than
// the device itself (e.g. ATTRS{serial}=="3f980000.usb" on SoC boards) and
// are kept only as a fallback; the first device-level serial wins and stops
// the scan. Returns "" when no usable serial is present.
func serialNumber(walk string) string {
	var fallback string
	for _, line := range strings.Split(walk, "\n") {
		if !strings.Contains(line, "serial") {
			continue
		}
		parts := strings.SplitN(line, "\"", 3)
		if len(parts) < 2 {
			continue
		}
		if strings.Contains(line, ".usb") {
			fallback = parts[1]
			continue
		}
		return parts[1]
	}
	return fallback
}
