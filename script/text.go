package script

import (
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Game text is stored as Shift-JIS. Source files are UTF-8; these helpers
// transcode at the boundary.

// EncodeText converts a UTF-8 source string to game bytes.
func EncodeText(s string) ([]byte, error) {
	out, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), []byte(s))
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeText converts game bytes to a UTF-8 string.
func DecodeText(b []byte) (string, error) {
	out, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
