package att

import "encoding/binary"

// PDU is one decoded attribute protocol data unit, a view over the octets
// it was decoded from.
type PDU interface {
	AttributeOpcode() uint8
	Bytes() []byte
}

const ErrorResponseCode = 0x01

// ErrorResponse implements Error Response (0x01) [Vol 3, Part F, 3.4.1.1].
type ErrorResponse []byte

// NewErrorResponse builds an Error Response for the given request opcode,
// handle and code.
func NewErrorResponse(req uint8, h uint16, c ErrorCode) ErrorResponse {
	r := ErrorResponse(make([]byte, 5))
	r[0] = ErrorResponseCode
	r[1] = req
	binary.LittleEndian.PutUint16(r[2:], h)
	r[4] = uint8(c)
	return r
}

func (r ErrorResponse) AttributeOpcode() uint8      { return r[0] }
func (r ErrorResponse) Bytes() []byte               { return r }
func (r ErrorResponse) RequestOpcodeInError() uint8 { return r[1] }
func (r ErrorResponse) AttributeInError() uint16    { return binary.LittleEndian.Uint16(r[2:]) }
func (r ErrorResponse) ErrorCode() ErrorCode        { return ErrorCode(r[4]) }

// Err converts the response into the surfaced error value.
func (r ErrorResponse) Err() *Error {
	return &Error{Req: r.RequestOpcodeInError(), Handle: r.AttributeInError(), Code: r.ErrorCode()}
}

const ExchangeMTURequestCode = 0x02

// ExchangeMTURequest implements Exchange MTU Request (0x02) [Vol 3, Part F, 3.4.2.1].
type ExchangeMTURequest []byte

func NewExchangeMTURequest(rxMTU uint16) ExchangeMTURequest {
	r := ExchangeMTURequest(make([]byte, 3))
	r[0] = ExchangeMTURequestCode
	binary.LittleEndian.PutUint16(r[1:], rxMTU)
	return r
}

func (r ExchangeMTURequest) AttributeOpcode() uint8 { return r[0] }
func (r ExchangeMTURequest) Bytes() []byte          { return r }
func (r ExchangeMTURequest) ClientRxMTU() uint16    { return binary.LittleEndian.Uint16(r[1:]) }

const ExchangeMTUResponseCode = 0x03

// ExchangeMTUResponse implements Exchange MTU Response (0x03) [Vol 3, Part F, 3.4.2.2].
type ExchangeMTUResponse []byte

func NewExchangeMTUResponse(rxMTU uint16) ExchangeMTUResponse {
	r := ExchangeMTUResponse(make([]byte, 3))
	r[0] = ExchangeMTUResponseCode
	binary.LittleEndian.PutUint16(r[1:], rxMTU)
	return r
}

func (r ExchangeMTUResponse) AttributeOpcode() uint8 { return r[0] }
func (r ExchangeMTUResponse) Bytes() []byte          { return r }
func (r ExchangeMTUResponse) ServerRxMTU() uint16    { return binary.LittleEndian.Uint16(r[1:]) }

const FindInformationRequestCode = 0x04

// FindInformationRequest implements Find Information Request (0x04) [Vol 3, Part F, 3.4.3.1].
type FindInformationRequest []byte

func NewFindInformationRequest(start, end uint16) FindInformationRequest {
	r := FindInformationRequest(make([]byte, 5))
	r[0] = FindInformationRequestCode
	binary.LittleEndian.PutUint16(r[1:], start)
	binary.LittleEndian.PutUint16(r[3:], end)
	return r
}

func (r FindInformationRequest) AttributeOpcode() uint8 { return r[0] }
func (r FindInformationRequest) Bytes() []byte          { return r }
func (r FindInformationRequest) StartingHandle() uint16 { return binary.LittleEndian.Uint16(r[1:]) }
func (r FindInformationRequest) EndingHandle() uint16   { return binary.LittleEndian.Uint16(r[3:]) }

const FindInformationResponseCode = 0x05

// Find Information Response format octet values [Vol 3, Part F, 3.4.3.2].
const (
	FindInformationFormat16Bit  = 0x01
	FindInformationFormat128Bit = 0x02
)

// FindInformationResponse implements Find Information Response (0x05)
// [Vol 3, Part F, 3.4.3.2].
type FindInformationResponse []byte

func (r FindInformationResponse) AttributeOpcode() uint8  { return r[0] }
func (r FindInformationResponse) Bytes() []byte           { return r }
func (r FindInformationResponse) Format() uint8           { return r[1] }
func (r FindInformationResponse) InformationData() []byte { return r[2:] }

// ElementTotalSize returns the handle+UUID pair size implied by the format octet.
func (r FindInformationResponse) ElementTotalSize() int {
	if r.Format() == FindInformationFormat128Bit {
		return 2 + 16
	}
	return 2 + 2
}

func (r FindInformationResponse) ElementCount() int {
	return len(r.InformationData()) / r.ElementTotalSize()
}

// ElementPDUOffset returns the offset of element i from the start of the PDU.
func (r FindInformationResponse) ElementPDUOffset(i int) int {
	return 2 + i*r.ElementTotalSize()
}

const ReadByTypeRequestCode = 0x08

// ReadByTypeRequest implements Read By Type Request (0x08) [Vol 3, Part F, 3.4.4.1].
type ReadByTypeRequest []byte

func NewReadByTypeRequest(start, end uint16, typ []byte) ReadByTypeRequest {
	r := ReadByTypeRequest(make([]byte, 5+len(typ)))
	r[0] = ReadByTypeRequestCode
	binary.LittleEndian.PutUint16(r[1:], start)
	binary.LittleEndian.PutUint16(r[3:], end)
	copy(r[5:], typ)
	return r
}

func (r ReadByTypeRequest) AttributeOpcode() uint8 { return r[0] }
func (r ReadByTypeRequest) Bytes() []byte          { return r }
func (r ReadByTypeRequest) StartingHandle() uint16 { return binary.LittleEndian.Uint16(r[1:]) }
func (r ReadByTypeRequest) EndingHandle() uint16   { return binary.LittleEndian.Uint16(r[3:]) }
func (r ReadByTypeRequest) AttributeType() []byte  { return r[5:] }

const ReadByTypeResponseCode = 0x09

// ReadByTypeResponse implements Read By Type Response (0x09) [Vol 3, Part F, 3.4.4.2].
type ReadByTypeResponse []byte

func (r ReadByTypeResponse) AttributeOpcode() uint8    { return r[0] }
func (r ReadByTypeResponse) Bytes() []byte             { return r }
func (r ReadByTypeResponse) Length() uint8             { return r[1] }
func (r ReadByTypeResponse) AttributeDataList() []byte { return r[2:] }

// ElementTotalSize returns the fixed per-element size of the data list.
func (r ReadByTypeResponse) ElementTotalSize() int { return int(r.Length()) }

func (r ReadByTypeResponse) ElementCount() int {
	if r.Length() == 0 {
		return 0
	}
	return len(r.AttributeDataList()) / int(r.Length())
}

// ElementPDUOffset returns the offset of element i from the start of the PDU.
func (r ReadByTypeResponse) ElementPDUOffset(i int) int { return 2 + i*int(r.Length()) }

const ReadRequestCode = 0x0A

// ReadRequest implements Read Request (0x0A) [Vol 3, Part F, 3.4.4.3].
type ReadRequest []byte

func NewReadRequest(h uint16) ReadRequest {
	r := ReadRequest(make([]byte, 3))
	r[0] = ReadRequestCode
	binary.LittleEndian.PutUint16(r[1:], h)
	return r
}

func (r ReadRequest) AttributeOpcode() uint8  { return r[0] }
func (r ReadRequest) Bytes() []byte           { return r }
func (r ReadRequest) AttributeHandle() uint16 { return binary.LittleEndian.Uint16(r[1:]) }

const ReadResponseCode = 0x0B

// ReadResponse implements Read Response (0x0B) [Vol 3, Part F, 3.4.4.4].
type ReadResponse []byte

func (r ReadResponse) AttributeOpcode() uint8 { return r[0] }
func (r ReadResponse) Bytes() []byte          { return r }
func (r ReadResponse) AttributeValue() []byte { return r[1:] }

const ReadBlobRequestCode = 0x0C

// ReadBlobRequest implements Read Blob Request (0x0C) [Vol 3, Part F, 3.4.4.5].
type ReadBlobRequest []byte

func NewReadBlobRequest(h, offset uint16) ReadBlobRequest {
	r := ReadBlobRequest(make([]byte, 5))
	r[0] = ReadBlobRequestCode
	binary.LittleEndian.PutUint16(r[1:], h)
	binary.LittleEndian.PutUint16(r[3:], offset)
	return r
}

func (r ReadBlobRequest) AttributeOpcode() uint8  { return r[0] }
func (r ReadBlobRequest) Bytes() []byte           { return r }
func (r ReadBlobRequest) AttributeHandle() uint16 { return binary.LittleEndian.Uint16(r[1:]) }
func (r ReadBlobRequest) ValueOffset() uint16     { return binary.LittleEndian.Uint16(r[3:]) }

const ReadBlobResponseCode = 0x0D

// ReadBlobResponse implements Read Blob Response (0x0D) [Vol 3, Part F, 3.4.4.6].
type ReadBlobResponse []byte

func (r ReadBlobResponse) AttributeOpcode() uint8     { return r[0] }
func (r ReadBlobResponse) Bytes() []byte              { return r }
func (r ReadBlobResponse) PartAttributeValue() []byte { return r[1:] }

const ReadByGroupTypeRequestCode = 0x10

// ReadByGroupTypeRequest implements Read By Group Type Request (0x10)
// [Vol 3, Part F, 3.4.4.9].
type ReadByGroupTypeRequest []byte

func NewReadByGroupTypeRequest(start, end uint16, typ []byte) ReadByGroupTypeRequest {
	r := ReadByGroupTypeRequest(make([]byte, 5+len(typ)))
	r[0] = ReadByGroupTypeRequestCode
	binary.LittleEndian.PutUint16(r[1:], start)
	binary.LittleEndian.PutUint16(r[3:], end)
	copy(r[5:], typ)
	return r
}

func (r ReadByGroupTypeRequest) AttributeOpcode() uint8     { return r[0] }
func (r ReadByGroupTypeRequest) Bytes() []byte              { return r }
func (r ReadByGroupTypeRequest) StartingHandle() uint16     { return binary.LittleEndian.Uint16(r[1:]) }
func (r ReadByGroupTypeRequest) EndingHandle() uint16       { return binary.LittleEndian.Uint16(r[3:]) }
func (r ReadByGroupTypeRequest) AttributeGroupType() []byte { return r[5:] }

const ReadByGroupTypeResponseCode = 0x11

// ReadByGroupTypeResponse implements Read By Group Type Response (0x11)
// [Vol 3, Part F, 3.4.4.10]. Each element is start-handle, end-handle and
// a group UUID, 2+2+uuid bytes.
type ReadByGroupTypeResponse []byte

func (r ReadByGroupTypeResponse) AttributeOpcode() uint8    { return r[0] }
func (r ReadByGroupTypeResponse) Bytes() []byte             { return r }
func (r ReadByGroupTypeResponse) Length() uint8             { return r[1] }
func (r ReadByGroupTypeResponse) AttributeDataList() []byte { return r[2:] }

// ElementTotalSize returns the fixed per-element size of the data list.
func (r ReadByGroupTypeResponse) ElementTotalSize() int { return int(r.Length()) }

func (r ReadByGroupTypeResponse) ElementCount() int {
	if r.Length() == 0 {
		return 0
	}
	return len(r.AttributeDataList()) / int(r.Length())
}

// ElementPDUOffset returns the offset of element i from the start of the PDU.
func (r ReadByGroupTypeResponse) ElementPDUOffset(i int) int { return 2 + i*int(r.Length()) }

const WriteRequestCode = 0x12

// WriteRequest implements Write Request (0x12) [Vol 3, Part F, 3.4.5.1].
type WriteRequest []byte

func NewWriteRequest(h uint16, value []byte) WriteRequest {
	r := WriteRequest(make([]byte, 3+len(value)))
	r[0] = WriteRequestCode
	binary.LittleEndian.PutUint16(r[1:], h)
	copy(r[3:], value)
	return r
}

func (r WriteRequest) AttributeOpcode() uint8  { return r[0] }
func (r WriteRequest) Bytes() []byte           { return r }
func (r WriteRequest) AttributeHandle() uint16 { return binary.LittleEndian.Uint16(r[1:]) }
func (r WriteRequest) AttributeValue() []byte  { return r[3:] }

const WriteResponseCode = 0x13

// WriteResponse implements Write Response (0x13) [Vol 3, Part F, 3.4.5.2].
type WriteResponse []byte

func NewWriteResponse() WriteResponse { return WriteResponse{WriteResponseCode} }

func (r WriteResponse) AttributeOpcode() uint8 { return r[0] }
func (r WriteResponse) Bytes() []byte          { return r }

const WriteCommandCode = 0x52

// WriteCommand implements Write Command (0x52) [Vol 3, Part F, 3.4.5.3].
// A command carries no response.
type WriteCommand []byte

func NewWriteCommand(h uint16, value []byte) WriteCommand {
	r := WriteCommand(make([]byte, 3+len(value)))
	r[0] = WriteCommandCode
	binary.LittleEndian.PutUint16(r[1:], h)
	copy(r[3:], value)
	return r
}

func (r WriteCommand) AttributeOpcode() uint8  { return r[0] }
func (r WriteCommand) Bytes() []byte           { return r }
func (r WriteCommand) AttributeHandle() uint16 { return binary.LittleEndian.Uint16(r[1:]) }
func (r WriteCommand) AttributeValue() []byte  { return r[3:] }

const HandleValueNotificationCode = 0x1B

// HandleValueNotification implements Handle Value Notification (0x1B)
// [Vol 3, Part F, 3.4.7.1].
type HandleValueNotification []byte

func NewHandleValueNotification(h uint16, value []byte) HandleValueNotification {
	r := HandleValueNotification(make([]byte, 3+len(value)))
	r[0] = HandleValueNotificationCode
	binary.LittleEndian.PutUint16(r[1:], h)
	copy(r[3:], value)
	return r
}

func (r HandleValueNotification) AttributeOpcode() uint8  { return r[0] }
func (r HandleValueNotification) Bytes() []byte           { return r }
func (r HandleValueNotification) AttributeHandle() uint16 { return binary.LittleEndian.Uint16(r[1:]) }
func (r HandleValueNotification) AttributeValue() []byte  { return r[3:] }

const HandleValueIndicationCode = 0x1D

// HandleValueIndication implements Handle Value Indication (0x1D)
// [Vol 3, Part F, 3.4.7.2]. Indications require a Handle Value
// Confirmation in reply.
type HandleValueIndication []byte

func NewHandleValueIndication(h uint16, value []byte) HandleValueIndication {
	r := HandleValueIndication(make([]byte, 3+len(value)))
	r[0] = HandleValueIndicationCode
	binary.LittleEndian.PutUint16(r[1:], h)
	copy(r[3:], value)
	return r
}

func (r HandleValueIndication) AttributeOpcode() uint8  { return r[0] }
func (r HandleValueIndication) Bytes() []byte           { return r }
func (r HandleValueIndication) AttributeHandle() uint16 { return binary.LittleEndian.Uint16(r[1:]) }
func (r HandleValueIndication) AttributeValue() []byte  { return r[3:] }

const HandleValueConfirmationCode = 0x1E

// HandleValueConfirmation implements Handle Value Confirmation (0x1E)
// [Vol 3, Part F, 3.4.7.3].
type HandleValueConfirmation []byte

func NewHandleValueConfirmation() HandleValueConfirmation {
	return HandleValueConfirmation{HandleValueConfirmationCode}
}

func (r HandleValueConfirmation) AttributeOpcode() uint8 { return r[0] }
func (r HandleValueConfirmation) Bytes() []byte          { return r }

const MultipleHandleValueNotificationCode = 0x23

// MultipleHandleValueNotification implements Multiple Handle Value
// Notification (0x23) [Vol 3, Part F, 3.4.7.4]. It is accepted from the
// wire but not dispatched element-wise; the reader logs and drops it.
type MultipleHandleValueNotification []byte

func (r MultipleHandleValueNotification) AttributeOpcode() uint8        { return r[0] }
func (r MultipleHandleValueNotification) Bytes() []byte                 { return r }
func (r MultipleHandleValueNotification) HandleLengthValueList() []byte { return r[1:] }

// Unknown is any PDU whose opcode the client does not implement.
type Unknown []byte

func (r Unknown) AttributeOpcode() uint8 { return r[0] }
func (r Unknown) Bytes() []byte          { return r }
func (r Unknown) Payload() []byte        { return r[1:] }
