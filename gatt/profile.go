package gatt

import (
	"fmt"
	"strings"

	"github.com/xranby/direct-bt-1/octets"
)

// PreferredConnParams is the Peripheral Preferred Connection Parameters
// characteristic value (0x2A04), four 16-bit fields.
type PreferredConnParams struct {
	MinConnInterval    uint16
	MaxConnInterval    uint16
	SlaveLatency       uint16
	SupervisionTimeout uint16
}

func decodePreferredConnParams(b []byte) (PreferredConnParams, bool) {
	o := octets.From(b)
	var p PreferredConnParams
	var err error
	if p.MinConnInterval, err = o.Uint16(0); err != nil {
		return p, false
	}
	if p.MaxConnInterval, err = o.Uint16(2); err != nil {
		return p, false
	}
	if p.SlaveLatency, err = o.Uint16(4); err != nil {
		return p, false
	}
	if p.SupervisionTimeout, err = o.Uint16(6); err != nil {
		return p, false
	}
	return p, true
}

// GenericAccess is the content of the Generic Access service (0x1800).
type GenericAccess struct {
	DeviceName     string
	Appearance     uint16
	PrefConnParams PreferredConnParams
}

// PnPID is the PnP ID characteristic value (0x2A50).
type PnPID struct {
	VendorIDSource uint8
	VendorID       uint16
	ProductID      uint16
	ProductVersion uint16
}

func decodePnPID(b []byte) (PnPID, bool) {
	o := octets.From(b)
	var p PnPID
	var err error
	if p.VendorIDSource, err = o.Uint8(0); err != nil {
		return p, false
	}
	if p.VendorID, err = o.Uint16(1); err != nil {
		return p, false
	}
	if p.ProductID, err = o.Uint16(3); err != nil {
		return p, false
	}
	if p.ProductVersion, err = o.Uint16(5); err != nil {
		return p, false
	}
	return p, true
}

// DeviceInformation is the content of the Device Information service (0x180A).
type DeviceInformation struct {
	SystemID           []byte
	ModelNumber        string
	SerialNumber       string
	FirmwareRevision   string
	HardwareRevision   string
	SoftwareRevision   string
	ManufacturerName   string
	RegulatoryCertData []byte
	PnPID              *PnPID
}

// Modalias renders the PnP ID in the kernel modalias form.
func (d *DeviceInformation) Modalias() string {
	if d.PnPID == nil {
		return ""
	}
	p := d.PnPID
	switch p.VendorIDSource {
	case 0x01:
		return fmt.Sprintf("bluetooth:v%04Xp%04Xd%04X", p.VendorID, p.ProductID, p.ProductVersion)
	case 0x02:
		return fmt.Sprintf("usb:v%04Xp%04Xd%04X", p.VendorID, p.ProductID, p.ProductVersion)
	}
	return fmt.Sprintf("source<0x%X>:v%04Xp%04Xd%04X", p.VendorIDSource, p.VendorID, p.ProductID, p.ProductVersion)
}

// nameToString renders a UTF-8 characteristic value, trimmed at the
// first NUL.
func nameToString(b []byte) string {
	s := string(b)
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return s
}

// GenericAccess reads the Generic Access service content from the
// discovered tree. It returns nil when the record is incomplete: both
// Device Name and Preferred Connection Parameters must have been read.
func (h *Handler) GenericAccess() (*GenericAccess, error) {
	if err := h.requireConnected(); err != nil {
		return nil, err
	}
	ga := &GenericAccess{}
	haveName, haveParams := false, false
	for _, s := range h.Services() {
		if !s.UUID.Equal(GenericAccessServiceUUID) {
			continue
		}
		for _, c := range s.Characteristics {
			switch {
			case c.UUID.Equal(DeviceNameUUID):
				if v, err := h.ReadCharacteristicValue(c, -1); err == nil {
					ga.DeviceName = nameToString(v)
					haveName = true
				}
			case c.UUID.Equal(AppearanceUUID):
				if v, err := h.ReadCharacteristicValue(c, 0); err == nil {
					if a, err := octets.From(v).Uint16(0); err == nil {
						ga.Appearance = a
					}
				}
			case c.UUID.Equal(PreferredParamsUUID):
				if v, err := h.ReadCharacteristicValue(c, 0); err == nil {
					if p, ok := decodePreferredConnParams(v); ok {
						ga.PrefConnParams = p
						haveParams = true
					}
				}
			}
		}
	}
	if !haveName || !haveParams {
		return nil, nil
	}
	return ga, nil
}

// DeviceInformation reads the Device Information service content from
// the discovered tree. It returns nil when no Device Information
// characteristic was found.
func (h *Handler) DeviceInformation() (*DeviceInformation, error) {
	if err := h.requireConnected(); err != nil {
		return nil, err
	}
	di := &DeviceInformation{}
	found := false
	for _, s := range h.Services() {
		if !s.UUID.Equal(DeviceInformationServiceUUID) {
			continue
		}
		for _, c := range s.Characteristics {
			found = true
			v, err := h.ReadCharacteristicValue(c, 0)
			if err != nil {
				continue
			}
			switch {
			case c.UUID.Equal(SystemIDUUID):
				di.SystemID = v
			case c.UUID.Equal(ModelNumberUUID):
				di.ModelNumber = nameToString(v)
			case c.UUID.Equal(SerialNumberUUID):
				di.SerialNumber = nameToString(v)
			case c.UUID.Equal(FirmwareRevisionUUID):
				di.FirmwareRevision = nameToString(v)
			case c.UUID.Equal(HardwareRevisionUUID):
				di.HardwareRevision = nameToString(v)
			case c.UUID.Equal(SoftwareRevisionUUID):
				di.SoftwareRevision = nameToString(v)
			case c.UUID.Equal(ManufacturerNameUUID):
				di.ManufacturerName = nameToString(v)
			case c.UUID.Equal(RegulatoryCertDataUUID):
				di.RegulatoryCertData = v
			case c.UUID.Equal(PnPIDUUID):
				if p, ok := decodePnPID(v); ok {
					di.PnPID = &p
				}
			}
		}
	}
	if !found {
		return nil, nil
	}
	return di, nil
}
