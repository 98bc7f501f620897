package errors

// ErrorCode identifies an application error category
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_UNAUTHENTICATED  ErrorCode = 1003
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1004

	ErrorCode_WEBHOOK_MISSING_SIGNATURE   ErrorCode = 2000
	ErrorCode_WEBHOOK_MALFORMED_SIGNATURE ErrorCode = 2001
	ErrorCode_WEBHOOK_EXPIRED             ErrorCode = 2002
	ErrorCode_WEBHOOK_INVALID_SIGNATURE   ErrorCode = 2003

	ErrorCode_CONFIG_MISSING ErrorCode = 3000

	ErrorCode_UPSTREAM_FAILED  ErrorCode = 4000
	ErrorCode_UPSTREAM_TIMEOUT ErrorCode = 4001
	ErrorCode_SMS_SEND_FAILED  ErrorCode = 4002

	ErrorCode_DB_QUERY_FAILED ErrorCode = 5000
)

// String returns the text name of the error code
func (c ErrorCode) String() string {
	switch c {
	case ErrorCode_HTTP_OK:
		return "OK"
	case ErrorCode_INTERNAL:
		return "INTERNAL"
	case ErrorCode_INVALID_ARGUMENT:
		return "INVALID_ARGUMENT"
	case ErrorCode_NOT_FOUND:
		return "NOT_FOUND"
	case ErrorCode_UNAUTHENTICATED:
		return "UNAUTHENTICATED"
	case ErrorCode_INVALID_PAYLOAD:
		return "INVALID_PAYLOAD"
	case ErrorCode_WEBHOOK_MISSING_SIGNATURE:
		return "WEBHOOK_MISSING_SIGNATURE"
	case ErrorCode_WEBHOOK_MALFORMED_SIGNATURE:
		return "WEBHOOK_MALFORMED_SIGNATURE"
	case ErrorCode_WEBHOOK_EXPIRED:
		return "WEBHOOK_EXPIRED"
	case ErrorCode_WEBHOOK_INVALID_SIGNATURE:
		return "WEBHOOK_INVALID_SIGNATURE"
	case ErrorCode_CONFIG_MISSING:
		return "CONFIG_MISSING"
	case ErrorCode_UPSTREAM_FAILED:
		return "UPSTREAM_FAILED"
	case ErrorCode_UPSTREAM_TIMEOUT:
		return "UPSTREAM_TIMEOUT"
	case ErrorCode_SMS_SEND_FAILED:
		return "SMS_SEND_FAILED"
	case ErrorCode_DB_QUERY_FAILED:
		return "DB_QUERY_FAILED"
	default:
		return "UNKNOWN"
	}
}
