// Package byteorder converts 16-bit values between host and network order.
//
// EtherCAT payloads are little endian; only the Ethernet header (EtherType)
// uses network order, which is what these helpers are for.
package byteorder

import "encoding/binary"

// Htons converts a host-order value to network (big endian) order.
func Htons(host uint16) uint16 {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], host)
	return binary.NativeEndian.Uint16(b[:])
}

// Ntohs converts a network-order value to host order.
func Ntohs(network uint16) uint16 {
	var b [2]byte
	binary.NativeEndian.PutUint16(b[:], network)
	return binary.BigEndian.Uint16(b[:])
}
