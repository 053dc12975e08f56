package signature

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   Header
		ok     bool
	}{
		{
			name:   "t and v1",
			header: "t=1700000000,v1=abc123",
			want:   Header{T: "1700000000", V1: "abc123"},
			ok:     true,
		},
		{
			name:   "order does not matter",
			header: "v1=abc123,t=1700000000",
			want:   Header{T: "1700000000", V1: "abc123"},
			ok:     true,
		},
		{
			name:   "extra segments ignored",
			header: "t=1,v0=old,v1=abc,foo=bar",
			want:   Header{T: "1", V1: "abc"},
			ok:     true,
		},
		{
			name:   "last duplicate wins",
			header: "t=1,v1=first,v1=second,t=2",
			want:   Header{T: "2", V1: "second"},
			ok:     true,
		},
		{
			name:   "split on first equals only",
			header: "t=1,v1=ab=cd",
			want:   Header{T: "1", V1: "ab=cd"},
			ok:     true,
		},
		{
			name:   "segment without equals skipped",
			header: "garbage,t=1,v1=abc",
			want:   Header{T: "1", V1: "abc"},
			ok:     true,
		},
		{
			name:   "missing v1",
			header: "t=1700000000",
			want:   Header{T: "1700000000"},
			ok:     false,
		},
		{
			name:   "missing t",
			header: "v1=abc",
			want:   Header{V1: "abc"},
			ok:     false,
		},
		{
			name:   "empty values",
			header: "t=,v1=",
			ok:     false,
		},
		{
			name:   "keys are not trimmed",
			header: "t=1, v1=abc",
			want:   Header{T: "1"},
			ok:     false,
		},
		{
			name:   "empty header",
			header: "",
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseHeader(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHeaderCanonical(t *testing.T) {
	want := "t=1700000000,v1=abc"
	for _, header := range []string{
		"t=1700000000,v1=abc",
		"v1=abc,t=1700000000",
		"t=1700000000,v0=old,v1=abc,x=1",
		"t=1,v1=zzz,t=1700000000,v1=abc",
	} {
		parsed, ok := ParseHeader(header)
		assert.True(t, ok, header)
		assert.Equal(t, want, parsed.Canonical(), header)
	}
}
