package capture

import (
	"fmt"
	"net"
)

// Family tags the address carried by a Record.
type Family uint8

const (
	// FamilyUnspec marks a record with no known address family.
	FamilyUnspec Family = iota
	// FamilyLink marks a hardware (MAC-level) address record.
	FamilyLink
	// FamilyInet marks an IPv4 address record.
	FamilyInet
	// FamilyInet6 marks an IPv6 address record.
	FamilyInet6
)

func (f Family) String() string {
	switch f {
	case FamilyLink:
		return "link"
	case FamilyInet:
		return "inet"
	case FamilyInet6:
		return "inet6"
	default:
		return "unspec"
	}
}

// Flags are interface state bits common to every source.
type Flags uint

const (
	// FlagUp is set when the interface is administratively up.
	FlagUp Flags = 1 << iota
	// FlagLoopback is set on the loopback interface.
	FlagLoopback
	// FlagRunning is set when the link is operational.
	FlagRunning
)

// Record is one address entry of one interface, in the style of getifaddrs:
// an interface appears once per address it carries, so the same name shows
// up several times when it has both a hardware and IP addresses.
type Record struct {
	Name   string
	Flags  Flags
	Family Family
	// Addr holds the hardware address for FamilyLink and the IP for the inet
	// families. It is nil when the entry has no address, and empty but
	// non-nil when the OS reports an address without its bytes.
	Addr []byte
}

// HasAddr reports whether the record has an associated address.
func (r Record) HasAddr() bool { return r.Addr != nil }

// Package-level hooks so tests can run without touching the host.
var (
	netInterfaces  = net.Interfaces
	interfaceAddrs = func(ifi *net.Interface) ([]net.Addr, error) { return ifi.Addrs() }
	hardwareAddr   = func(name string) net.HardwareAddr {
		ifi, err := net.InterfaceByName(name)
		if err != nil {
			return nil
		}
		return ifi.HardwareAddr
	}
)

// NetRecords lists the host interfaces through the net package. Each
// interface yields a link record when it has a hardware address, followed
// by one record per IP address.
func NetRecords() ([]Record, error) {
	ifis, err := netInterfaces()
	if err != nil {
		return nil, fmt.Errorf("net interfaces: %w", err)
	}

	var recs []Record
	for i := range ifis {
		ifi := &ifis[i]
		flags := netFlags(ifi.Flags)
		if len(ifi.HardwareAddr) > 0 {
			recs = append(recs, Record{
				Name:   ifi.Name,
				Flags:  flags,
				Family: FamilyLink,
				Addr:   append([]byte(nil), ifi.HardwareAddr...),
			})
		}
		addrs, err := interfaceAddrs(ifi)
		if err != nil {
			// The link record above is what discovery needs.
			continue
		}
		for _, a := range addrs {
			if ip := addrIP(a); ip != nil {
				recs = append(recs, ipRecord(ifi.Name, flags, ip))
			}
		}
	}
	return recs, nil
}

// PcapRecords lists the libpcap devices as records. libpcap reports each
// device once, so one link record is synthesized per device, with the
// hardware address looked up by name where the OS knows it.
func PcapRecords() ([]Record, error) {
	devices, err := findAllDevs()
	if err != nil {
		return nil, fmt.Errorf("pcap find devices: %w", err)
	}

	var recs []Record
	for _, d := range devices {
		flags := pcapFlags(d.Flags)
		link := Record{Name: d.Name, Flags: flags, Family: FamilyLink}
		if mac := hardwareAddr(d.Name); len(mac) > 0 {
			link.Addr = append([]byte(nil), mac...)
		} else if len(d.Addresses) > 0 {
			link.Addr = []byte{}
		}
		recs = append(recs, link)

		for _, a := range d.Addresses {
			if a.IP != nil {
				recs = append(recs, ipRecord(d.Name, flags, a.IP))
			}
		}
	}
	return recs, nil
}

func netFlags(nf net.Flags) Flags {
	var f Flags
	if nf&net.FlagUp != 0 {
		f |= FlagUp
	}
	if nf&net.FlagLoopback != 0 {
		f |= FlagLoopback
	}
	if nf&net.FlagRunning != 0 {
		f |= FlagRunning
	}
	return f
}

func addrIP(a net.Addr) net.IP {
	switch v := a.(type) {
	case *net.IPNet:
		return v.IP
	case *net.IPAddr:
		return v.IP
	}
	return nil
}

func ipRecord(name string, flags Flags, ip net.IP) Record {
	if ip4 := ip.To4(); ip4 != nil {
		return Record{Name: name, Flags: flags, Family: FamilyInet, Addr: ip4}
	}
	return Record{Name: name, Flags: flags, Family: FamilyInet6, Addr: ip.To16()}
}
