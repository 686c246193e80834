package wire

import (
	"strconv"
	"strings"
)

// SignatureInfo is a parsed script-function signature. Signatures use
// a "::"-delimited scheme: script::line::function, or
// script::scope::line::function for built-in scripts whose script
// name itself contains a scope.
type SignatureInfo struct {
	Script   string
	Line     int
	Name     string
	Resolved bool
}

// ParseSignature splits a qualified signature string. Any segment
// count other than 3 or 4 yields an unresolved result; callers show a
// placeholder item for those.
func ParseSignature(qualified string) SignatureInfo {
	parts := strings.Split(qualified, "::")
	switch len(parts) {
	case 3:
		line, _ := strconv.Atoi(parts[1])
		return SignatureInfo{
			Script:   parts[0],
			Line:     line,
			Name:     parts[2],
			Resolved: true,
		}
	case 4:
		line, _ := strconv.Atoi(parts[2])
		return SignatureInfo{
			Script:   parts[0] + "::" + parts[1],
			Line:     line,
			Name:     parts[3],
			Resolved: true,
		}
	}
	return SignatureInfo{}
}
