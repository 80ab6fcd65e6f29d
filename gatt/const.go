package gatt

import "github.com/xranby/direct-bt-1/uuid"

// Attribute types [Vol 3, Part G, 3].
var (
	attrPrimaryServiceUUID   = uuid.UUID16(0x2800)
	attrSecondaryServiceUUID = uuid.UUID16(0x2801)
	attrIncludeUUID          = uuid.UUID16(0x2802)
	attrCharacteristicUUID   = uuid.UUID16(0x2803)

	attrClientCharacteristicConfigUUID = uuid.UUID16(0x2902)
)

// Well-known services and characteristics (GATT assigned numbers).
var (
	GenericAccessServiceUUID     = uuid.UUID16(0x1800)
	DeviceInformationServiceUUID = uuid.UUID16(0x180A)

	DeviceNameUUID      = uuid.UUID16(0x2A00)
	AppearanceUUID      = uuid.UUID16(0x2A01)
	PreferredParamsUUID = uuid.UUID16(0x2A04)

	SystemIDUUID           = uuid.UUID16(0x2A23)
	ModelNumberUUID        = uuid.UUID16(0x2A24)
	SerialNumberUUID       = uuid.UUID16(0x2A25)
	FirmwareRevisionUUID   = uuid.UUID16(0x2A26)
	HardwareRevisionUUID   = uuid.UUID16(0x2A27)
	SoftwareRevisionUUID   = uuid.UUID16(0x2A28)
	ManufacturerNameUUID   = uuid.UUID16(0x2A29)
	RegulatoryCertDataUUID = uuid.UUID16(0x2A2A)
	PnPIDUUID              = uuid.UUID16(0x2A50)
)

// Client Characteristic Configuration value bits [Vol 3, Part G, 3.3.3.3].
const (
	flagCCCNotify   = 0x0001
	flagCCCIndicate = 0x0002
)

const (
	// ClientMaxMTU is the receive MTU offered during MTU exchange.
	ClientMaxMTU = 512

	// readPollTimeoutMS bounds each transport read so the reader notices
	// a stop request promptly. It is not an ATT procedure timeout.
	readPollTimeoutMS = 500

	// ringCapacity bounds the reader-to-issuer response queue.
	ringCapacity = 128
)
