// Package att implements the client-side codec of the Bluetooth Attribute
// Protocol [Vol 3, Part F]. Every PDU is a thin view over its wire octets.
package att

// DefaultMTU defines the default MTU of the ATT protocol.
const DefaultMTU = 23

// MaxMTU is the maximum of ATT_MTU, which is 512 bytes of value length and
// 3 bytes of header. The maximum length of an attribute value shall be 512
// octets [Vol 3, Part F, 3.2.9].
const MaxMTU = 512 + 3
