// Package hotplug signals when a USB HID device from a given vendor is
// attached.
package hotplug

// ElgatoVendorID is the USB vendor ID of Stream Deck devices.
const ElgatoVendorID uint16 = 0x0fd9
