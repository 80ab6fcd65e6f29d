// Package adv decodes Extended Inquiry Response and Advertising Data
// payloads into structured information reports, and crafts advertising
// packets. Refer to Supplement to Bluetooth Core Specification, Part A.
package adv

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	bt "github.com/xranby/direct-bt-1"
	"github.com/xranby/direct-bt-1/octets"
	"github.com/xranby/direct-bt-1/uuid"
)

// Source tells which payload kind a report was decoded from.
type Source int

const (
	SourceNA Source = iota
	SourceAD
	SourceEIR
)

func (s Source) String() string {
	switch s {
	case SourceAD:
		return "AD"
	case SourceEIR:
		return "EIR"
	}
	return "N/A"
}

// DataFields is the bitmask of populated report fields.
type DataFields uint32

const (
	FieldEvtType DataFields = 1 << iota
	FieldAddressType
	FieldAddress
	FieldFlags
	FieldName
	FieldNameShort
	FieldRSSI
	FieldTxPower
	FieldManufData
	FieldDeviceClass
	FieldAppearance
	FieldHash
	FieldRandomizer
	FieldDeviceID
	FieldServiceUUID
)

var fieldName = map[DataFields]string{
	FieldEvtType:     "EVT_TYPE",
	FieldAddressType: "BDADDR_TYPE",
	FieldAddress:     "BDADDR",
	FieldFlags:       "FLAGS",
	FieldName:        "NAME",
	FieldNameShort:   "NAME_SHORT",
	FieldRSSI:        "RSSI",
	FieldTxPower:     "TX_POWER",
	FieldManufData:   "MANUF_DATA",
	FieldDeviceClass: "DEVICE_CLASS",
	FieldAppearance:  "APPEARANCE",
	FieldHash:        "HASH",
	FieldRandomizer:  "RANDOMIZER",
	FieldDeviceID:    "DEVICE_ID",
	FieldServiceUUID: "SERVICE_UUID",
}

func (f DataFields) String() string {
	var set []string
	for bit := DataFields(1); bit != 0 && bit <= FieldServiceUUID; bit <<= 1 {
		if f&bit != 0 {
			set = append(set, fieldName[bit])
		}
	}
	return "[" + strings.Join(set, ", ") + "]"
}

// ManufSpecificData is one Manufacturer Specific Data element.
type ManufSpecificData struct {
	Company uint16
	Data    []byte
}

// maxNameLen caps local names per the GAP name characteristics.
const maxNameLen = 30

var epoch = time.Now()

func currentMilliseconds() uint64 {
	return uint64(time.Since(epoch) / time.Millisecond)
}

// Report is the structured information decoded from one advertising or
// inquiry payload.
type Report struct {
	Source    Source
	Timestamp uint64 // milliseconds on a monotonic epoch

	EvtType     uint8
	AddressType bt.AddressType
	Address     bt.EUI48

	Flags       int8
	Name        string
	ShortName   string
	RSSI        int8
	TxPower     int8
	DeviceClass uint32
	Appearance  uint16
	Hash        [16]byte
	Randomizer  [16]byte

	DIDSource  uint16
	DIDVendor  uint16
	DIDProduct uint16
	DIDVersion uint16

	ManufData *ManufSpecificData
	Services  []uuid.UUID

	fields DataFields
}

// NewReport returns an empty report stamped with the current monotonic
// time.
func NewReport(src Source) *Report {
	return &Report{Source: src, Timestamp: currentMilliseconds()}
}

// Fields returns the bitmask of populated fields.
func (r *Report) Fields() DataFields { return r.fields }

// Has reports whether all bits of f are populated.
func (r *Report) Has(f DataFields) bool { return r.fields&f == f }

func (r *Report) set(f DataFields) { r.fields |= f }

func (r *Report) setAddress(a bt.EUI48) {
	r.Address = a
	r.set(FieldAddress)
}

func (r *Report) setRSSI(v int8) {
	r.RSSI = v
	r.set(FieldRSSI)
}

func (r *Report) setName(b []byte) {
	r.Name = clipName(b)
	r.set(FieldName)
}

func (r *Report) setShortName(b []byte) {
	r.ShortName = clipName(b)
	r.set(FieldNameShort)
}

func clipName(b []byte) string {
	if len(b) > maxNameLen {
		b = b[:maxNameLen]
	}
	s := string(b)
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return s
}

func (r *Report) addService(u uuid.UUID) {
	for _, s := range r.Services {
		if s.Equal(u) {
			return
		}
	}
	r.Services = append(r.Services, u)
	r.set(FieldServiceUUID)
}

// nextDataElem walks one TLV element starting at off. It returns the
// element type and data and the offset of the next element; next == 0
// means the significant part of the stream ended.
func nextDataElem(data []byte, off int) (typ uint8, elem []byte, next int, err error) {
	if off >= len(data) {
		return 0, nil, 0, nil
	}
	l := int(data[off]) // covers type + data, less the length octet itself
	if l == 0 {
		return 0, nil, 0, nil
	}
	if off+1+l > len(data) {
		return 0, nil, 0, errors.Wrapf(bt.ErrTruncatedAdElement, "element at %d, length %d, payload %d", off, l, len(data))
	}
	return data[off+1], data[off+2 : off+1+l], off + 1 + l, nil
}

// ReadData walks the TLV elements of data, populating the report fields
// and the mask. It returns the number of elements processed. Unknown
// element types are logged and skipped.
func (r *Report) ReadData(data []byte) (int, error) {
	count := 0
	off := 0
	for {
		typ, elem, next, err := nextDataElem(data, off)
		if err != nil {
			return count, err
		}
		if next == 0 {
			return count, nil
		}
		off = next
		count++
		o := octets.From(elem)
		switch typ {
		case Flags:
			if len(elem) >= 1 {
				r.Flags = int8(elem[0])
				r.set(FieldFlags)
			}
		case SomeUUID16, AllUUID16:
			for j := 0; j+2 <= len(elem); j += 2 {
				if u, err := o.UUID(j, 2); err == nil {
					r.addService(u)
				}
			}
		case SomeUUID32, AllUUID32:
			for j := 0; j+4 <= len(elem); j += 4 {
				if u, err := o.UUID(j, 4); err == nil {
					r.addService(u)
				}
			}
		case SomeUUID128, AllUUID128:
			for j := 0; j+16 <= len(elem); j += 16 {
				if u, err := o.UUID(j, 16); err == nil {
					r.addService(u)
				}
			}
		case ShortName:
			r.setShortName(elem)
		case CompleteName:
			r.setName(elem)
		case TxPower:
			if len(elem) >= 1 {
				r.TxPower = int8(elem[0])
				r.set(FieldTxPower)
			}
		case ClassOfDevice:
			if len(elem) >= 3 {
				r.DeviceClass = uint32(elem[0]) | uint32(elem[1])<<8 | uint32(elem[2])<<16
				r.set(FieldDeviceClass)
			}
		case DeviceID:
			if len(elem) >= 8 {
				r.DIDSource, _ = o.Uint16(0)
				r.DIDVendor, _ = o.Uint16(2)
				r.DIDProduct, _ = o.Uint16(4)
				r.DIDVersion, _ = o.Uint16(6)
				r.set(FieldDeviceID)
			}
		case Appearance:
			if len(elem) >= 2 {
				r.Appearance, _ = o.Uint16(0)
				r.set(FieldAppearance)
			}
		case SimplePairingC192:
			if len(elem) >= 16 {
				copy(r.Hash[:], elem)
				r.set(FieldHash)
			}
		case SimplePairingR192:
			if len(elem) >= 16 {
				copy(r.Randomizer[:], elem)
				r.set(FieldRandomizer)
			}
		case ManufacturerData:
			if len(elem) >= 2 {
				company, _ := o.Uint16(0)
				md := &ManufSpecificData{Company: company, Data: append([]byte(nil), elem[2:]...)}
				r.ManufData = md
				r.set(FieldManufData)
			}
		default:
			log.Debugf("adv: %s element type %#02x with %d bytes skipped", r.Source, typ, len(elem))
		}
	}
}
