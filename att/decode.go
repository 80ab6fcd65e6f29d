package att

import (
	"github.com/pkg/errors"

	bt "github.com/xranby/direct-bt-1"
)

// minLen is the minimum wire length per opcode. Decode rejects shorter
// PDUs; no upper bound on the length is checked.
var minLen = map[uint8]int{
	ErrorResponseCode:                   5,
	ExchangeMTURequestCode:              3,
	ExchangeMTUResponseCode:             3,
	FindInformationRequestCode:          5,
	FindInformationResponseCode:         2,
	ReadByTypeRequestCode:               7,
	ReadByTypeResponseCode:              2,
	ReadRequestCode:                     3,
	ReadResponseCode:                    1,
	ReadBlobRequestCode:                 5,
	ReadBlobResponseCode:                1,
	ReadByGroupTypeRequestCode:          7,
	ReadByGroupTypeResponseCode:         2,
	WriteRequestCode:                    3,
	WriteResponseCode:                   1,
	WriteCommandCode:                    3,
	HandleValueNotificationCode:         3,
	HandleValueIndicationCode:           3,
	HandleValueConfirmationCode:         1,
	MultipleHandleValueNotificationCode: 1,
}

// Decode validates b and returns the PDU view matching its opcode.
// Unknown opcodes are returned as Unknown; they are not an error.
// The returned PDU aliases b.
func Decode(b []byte) (PDU, error) {
	if len(b) == 0 {
		return nil, errors.Wrap(bt.ErrProtocol, "empty pdu")
	}
	op := b[0]
	if n, ok := minLen[op]; ok && len(b) < n {
		return nil, errors.Wrapf(bt.ErrProtocol, "pdu %#02x: %d bytes, need %d", op, len(b), n)
	}
	switch op {
	case ErrorResponseCode:
		return ErrorResponse(b), nil
	case ExchangeMTURequestCode:
		return ExchangeMTURequest(b), nil
	case ExchangeMTUResponseCode:
		return ExchangeMTUResponse(b), nil
	case FindInformationRequestCode:
		return FindInformationRequest(b), nil
	case FindInformationResponseCode:
		r := FindInformationResponse(b)
		switch r.Format() {
		case FindInformationFormat16Bit, FindInformationFormat128Bit:
		default:
			return nil, errors.Wrapf(bt.ErrProtocol, "find information format %#02x", r.Format())
		}
		return r, nil
	case ReadByTypeRequestCode:
		return ReadByTypeRequest(b), nil
	case ReadByTypeResponseCode:
		return ReadByTypeResponse(b), nil
	case ReadRequestCode:
		return ReadRequest(b), nil
	case ReadResponseCode:
		return ReadResponse(b), nil
	case ReadBlobRequestCode:
		return ReadBlobRequest(b), nil
	case ReadBlobResponseCode:
		return ReadBlobResponse(b), nil
	case ReadByGroupTypeRequestCode:
		return ReadByGroupTypeRequest(b), nil
	case ReadByGroupTypeResponseCode:
		return ReadByGroupTypeResponse(b), nil
	case WriteRequestCode:
		return WriteRequest(b), nil
	case WriteResponseCode:
		return WriteResponse(b), nil
	case WriteCommandCode:
		return WriteCommand(b), nil
	case HandleValueNotificationCode:
		return HandleValueNotification(b), nil
	case HandleValueIndicationCode:
		return HandleValueIndication(b), nil
	case HandleValueConfirmationCode:
		return HandleValueConfirmation(b), nil
	case MultipleHandleValueNotificationCode:
		return MultipleHandleValueNotification(b), nil
	}
	return Unknown(b), nil
}
