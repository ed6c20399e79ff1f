package smbios

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVersion(t *testing.T) {
	testCases := []struct {
		name  string
		in    string
		major uint8
		minor uint8
		ok    bool
	}{
		{name: "bare token", in: "2.5", major: 2, minor: 5, ok: true},
		{name: "embedded token", in: "UEFI v10.21 release", major: 10, minor: 21, ok: true},
		{name: "oversized run skipped", in: "Firmware X83737.1 v1.23", major: 1, minor: 23, ok: true},
		{name: "stops at second dot", in: "1.2.3", major: 1, minor: 2, ok: true},
		{name: "no digits", in: "no version here", ok: false},
		{name: "empty string", in: "", ok: false},
		{name: "major only", in: "build 7", ok: false},
		{name: "dot without minor", in: "3.", ok: false},
		{name: "space before dot rejected", in: "4 .2 then 6.1", major: 6, minor: 1, ok: true},
		{name: "oversized minor rejected", in: "1.999", ok: false},
		{name: "boundary values accepted", in: "255.255", major: 255, minor: 255, ok: true},
		{name: "token at end of string", in: "rev 12.7", major: 12, minor: 7, ok: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			major, minor, ok := ParseVersion(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.major, major)
			assert.Equal(t, tc.minor, minor)
		})
	}
}
