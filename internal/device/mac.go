// Package device identifies the scanning device on the network.
package device

import (
	"log"
	"net"
)

// FallbackMAC is reported when no hardware address can be read.
const FallbackMAC = "02:00:00:00:00:00"

// Lookup finds the hardware address of a network interface.
type Lookup struct {
	// Interface, when set, is tried before any other interface (e.g. "wlan0").
	Interface string
	// List enumerates interfaces; nil means net.Interfaces.
	List func() ([]net.Interface, error)
}

// MAC returns the hardware address of the preferred interface, else of the
// first active non-loopback interface. Failures yield FallbackMAC.
func (l Lookup) MAC() string {
	list := l.List
	if list == nil {
		list = net.Interfaces
	}
	ifaces, err := list()
	if err != nil {
		log.Printf("device: list interfaces: %v, using %s", err, FallbackMAC)
		return FallbackMAC
	}

	if l.Interface != "" {
		for _, iface := range ifaces {
			if iface.Name == l.Interface && usable(iface.HardwareAddr) {
				return iface.HardwareAddr.String()
			}
		}
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 || iface.Flags&net.FlagUp == 0 {
			continue
		}
		if usable(iface.HardwareAddr) {
			return iface.HardwareAddr.String()
		}
	}
	return FallbackMAC
}

func usable(addr net.HardwareAddr) bool {
	if len(addr) != 6 {
		return false
	}
	for _, b := range addr {
		if b != 0 {
			return true
		}
	}
	return false
}
