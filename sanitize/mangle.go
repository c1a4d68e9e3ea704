package sanitize

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// UserInputString is used to strip value of any \r \n to
// avoiding log injection / CWE-117
func UserInputString(key string, value string) zapcore.Field {
	return zap.String(key, NoLineBreaks(value))
}

// NoLineBreaks removes linebreaks and carrage returns from string
func NoLineBreaks(value string) string {
	esc := strings.ReplaceAll(value, "\n", "")
	esc = strings.ReplaceAll(esc, "\r", "")
	return esc
}

// Email is a zap field for email addresses, it masks the local part
// so addresses dont end up verbatim in the logs
func Email(key string, value string) zapcore.Field {
	return zap.String(key, MaskEmail(value))
}

// MaskEmail keeps the first rune of the local part and the domain intact
func MaskEmail(value string) string {
	esc := NoLineBreaks(value)
	at := strings.LastIndex(esc, "@")
	if at <= 1 {
		return esc
	}
	return esc[:1] + "***" + esc[at:]
}
