package gatt

import "github.com/xranby/direct-bt-1/uuid"

// Property is the characteristic property bitset [Vol 3, Part G, 3.3.1.1].
type Property byte

const (
	CharBroadcast     Property = 0x01
	CharRead          Property = 0x02
	CharWriteNR       Property = 0x04
	CharWrite         Property = 0x08
	CharNotify        Property = 0x10
	CharIndicate      Property = 0x20
	CharSignedWrite   Property = 0x40
	CharExtendedProps Property = 0x80
)

// Service is one discovered primary service. The handler owns it;
// callers borrow it and must not retain it past Disconnect.
type Service struct {
	UUID      uuid.UUID
	Handle    uint16
	EndHandle uint16

	Characteristics []*Characteristic
}

// Characteristic is one discovered characteristic declaration.
type Characteristic struct {
	ServiceUUID      uuid.UUID
	ServiceHandle    uint16
	ServiceEndHandle uint16

	Property    Property
	Handle      uint16 // declaration handle
	ValueHandle uint16
	UUID        uuid.UUID

	CCCD        *CCCD
	Descriptors []Descriptor
}

// CCCD is a discovered Client Characteristic Configuration descriptor.
type CCCD struct {
	Handle uint16
	Value  uint16 // bit 0 notify, bit 1 indicate
}

// Descriptor is one handle/UUID pair from descriptor discovery.
type Descriptor struct {
	Handle uint16
	UUID   uuid.UUID
}

// NotificationListener receives server-initiated notifications on the
// reader goroutine. c is the matching declaration from the discovered
// tree, or nil when the handle is unknown. Listeners must not issue
// requests; doing so deadlocks the handler.
type NotificationListener func(c *Characteristic, handle uint16, value []byte)

// IndicationListener receives indications on the reader goroutine.
// confirmed reports whether the confirmation was already sent.
type IndicationListener func(c *Characteristic, handle uint16, value []byte, confirmed bool)
