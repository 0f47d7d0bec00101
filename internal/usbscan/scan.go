// Package usbscan enumerates attached USB devices and enriches them with
// host-derived metadata: udev serial numbers, USB ID database names, and
// associated /dev/video* nodes.
package usbscan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/gousb"
	"github.com/google/gousb/usbid"
	"github.com/sirupsen/logrus"

	"usbagent/internal/peripheral"
)

// Scanner produces one inventory snapshot per pass. Passes are strictly
// sequential; nothing here is safe for concurrent use.
type Scanner struct {
	Source   DeviceSource
	Attrs    AttributeResolver
	VideoDir string
	Log      logrus.FieldLogger
}

// Scan enumerates every attached device and builds its record. A non-nil
// error means the enumeration itself failed; the returned snapshot still
// holds whatever was collected before the failure and should be written out
// regardless.
func (s *Scanner) Scan(ctx context.Context) (peripheral.Snapshot, error) {
	snapshot := make(peripheral.Snapshot)

	descs, err := s.Source.Devices()
	if err != nil {
		err = fmt.Errorf("listing usb devices: %w", err)
	}
	for _, desc := range descs {
		rec, ok := s.record(ctx, desc)
		if !ok {
			continue
		}
		snapshot.Add(rec)
	}
	return snapshot, err
}

// record builds the peripheral record for one descriptor. It returns
// ok=false when the video-node directory cannot be listed, which drops the
// device from this pass; the next pass starts over from scratch anyway.
func (s *Scanner) record(ctx context.Context, desc *gousb.DeviceDesc) (peripheral.Peripheral, bool) {
	identifier := fmt.Sprintf("%s:%s", desc.Vendor, desc.Product)
	devicePath := fmt.Sprintf("/dev/bus/usb/%03d/%03d", desc.Bus, desc.Address)

	var vendorName, productName string
	if vendor, ok := usbid.Vendors[desc.Vendor]; ok {
		vendorName = vendor.Name
		if product, ok := vendor.Product[desc.Product]; ok {
			productName = product.Name
		}
	}

	name := peripheral.UnnamedLabel(identifier)
	if productName != "" {
		name = productName
	}

	rec := peripheral.Peripheral{
		Identifier: identifier,
		Name:       name,
		Description: fmt.Sprintf("%s device [%s] with ID %s. Protocol: %s",
			peripheral.InterfaceUSB, productName, identifier, usbid.Classify(desc)),
		Interface:    peripheral.InterfaceUSB,
		Classes:      classNames(desc),
		Available:    peripheral.Available,
		Vendor:       vendorName,
		Product:      productName,
		DevicePath:   devicePath,
		SerialNumber: s.resolveSerial(ctx, devicePath),
	}

	video, err := s.videoDevice(ctx, rec.SerialNumber)
	if err != nil {
		s.Log.WithError(err).Errorf("Unable to read files under %s", s.VideoDir)
		return peripheral.Peripheral{}, false
	}
	rec.VideoDevice = video
	return rec, true
}

// resolveSerial runs the attribute walk for a device node and extracts its
// serial number. Any resolver failure is logged and yields "", so the
// record simply omits the field.
func (s *Scanner) resolveSerial(ctx context.Context, path string) string {
	walk, err := s.Attrs.Walk(ctx, path)
	if err != nil {
		s.Log.WithError(err).Errorf("Unable to resolve attributes for %s", path)
		return ""
	}
	return serialNumber(walk)
}

// videoDevice finds the first video node whose udev serial matches the
// device's. Iteration stops at the first match. A listing failure of the
// video directory is returned to the caller as a pass-level error.
func (s *Scanner) videoDevice(ctx context.Context, serial string) (string, error) {
	entries, err := os.ReadDir(s.VideoDir)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", s.VideoDir, err)
	}
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), "video") {
			continue
		}
		path := filepath.Join(s.VideoDir, entry.Name())
		if s.resolveSerial(ctx, path) == serial {
			return path, nil
		}
	}
	return "", nil
}
