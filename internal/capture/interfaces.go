// Package capture reads the operating system's network interface list,
// either through libpcap (via the gopacket library) or through the Go net
// package, and flattens it into address records for adapter discovery.
package capture

import (
	"fmt"

	"github.com/gopacket/gopacket/pcap"
)

// libpcap interface flags (PCAP_IF_*); gopacket passes them through raw.
const (
	pcapIfLoopback = 0x00000001
	pcapIfUp       = 0x00000002
	pcapIfRunning  = 0x00000004
)

// Interface holds the metadata we care about for a libpcap device.
type Interface struct {
	Name        string
	Description string
	// Flags are the device flags translated to this package's Flags.
	Flags Flags
	// Addresses contains the string representation of every IP address
	// assigned to this interface (both IPv4 and IPv6).
	Addresses []string
}

// findAllDevs is the live implementation of the libpcap device discovery
// call. It is a package-level variable so tests can replace it with a stub
// without needing an OS-level pcap environment.
var findAllDevs = pcap.FindAllDevs

// FindInterfaces returns all network interfaces visible to libpcap on the
// current machine. It converts the raw pcap types into the lighter-weight
// Interface struct so the rest of the application never imports gopacket
// directly.
func FindInterfaces() ([]Interface, error) {
	devices, err := findAllDevs()
	if err != nil {
		return nil, fmt.Errorf("pcap find devices: %w", err)
	}

	ifaces := make([]Interface, 0, len(devices))
	for _, d := range devices {
		addrs := make([]string, 0, len(d.Addresses))
		for _, a := range d.Addresses {
			if a.IP != nil {
				addrs = append(addrs, a.IP.String())
			}
		}
		ifaces = append(ifaces, Interface{
			Name:        d.Name,
			Description: d.Description,
			Flags:       pcapFlags(d.Flags),
			Addresses:   addrs,
		})
	}
	return ifaces, nil
}

func pcapFlags(raw uint32) Flags {
	var f Flags
	if raw&pcapIfUp != 0 {
		f |= FlagUp
	}
	if raw&pcapIfLoopback != 0 {
		f |= FlagLoopback
	}
	if raw&pcapIfRunning != 0 {
		f |= FlagRunning
	}
	return f
}
