package protocol

import "fmt"

// ProtocolError is returned by Parse for any frame that does not conform
// to the grammar in spec §4.1, and by Build for a message it cannot encode.
// Unlike rules.RuleError it carries only a message, no numeric code; it is
// built by constructor functions in the shape of the teacher's
// internal/error package.
type ProtocolError struct {
	msg string
}

func (e ProtocolError) Error() string {
	return e.msg
}

func newProtocolError(format string, args ...interface{}) ProtocolError {
	return ProtocolError{msg: fmt.Sprintf(format, args...)}
}

func errMissingNewline() error {
	return newProtocolError("frame does not end in a newline")
}

func errMissingSeparator() error {
	return newProtocolError("frame is missing the '|' type separator")
}

func errUnknownType(t string) error {
	return newProtocolError("unknown message type: %q", t)
}

func errExtraSeparator() error {
	return newProtocolError("payload contains an unexpected '|'")
}

func errEmptyField(field string) error {
	return newProtocolError("field must not be empty: %s", field)
}

func errMalformedPayload(kind, detail string) error {
	return newProtocolError("malformed %s payload: %s", kind, detail)
}
