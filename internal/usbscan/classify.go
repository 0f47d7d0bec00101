package usbscan

import (
	"sort"

	"github.com/google/gousb"
	"github.com/google/gousb/usbid"
)

// classNames flattens a device's configuration/interface/alt-setting tree
// into the list of interface class names, deduplicated and in first-seen
// order. Configurations are visited in ascending number so the result is
// stable for a given descriptor (gousb stores them in a map).
func classNames(desc *gousb.DeviceDesc) []string {
	numbers := make([]int, 0, len(desc.Configs))
	for n := range desc.Configs {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	seen := make(map[string]bool)
	classes := make([]string, 0)
	for _, n := range numbers {
		for _, intf := range desc.Configs[n].Interfaces {
			for _, alt := range intf.AltSettings {
				name := className(alt.Class)
				if seen[name] {
					continue
				}
				seen[name] = true
				classes = append(classes, name)
			}
		}
	}
	return classes
}

// className resolves a class number through the static USB ID tables,
// falling back to the raw hex form for classes the tables do not know.
func className(c gousb.Class) string {
	if cls, ok := usbid.Classes[c]; ok {
		return cls.Name
	}
	return c.String()
}
