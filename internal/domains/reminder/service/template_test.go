package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRupiah(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{in: 0, want: "0"},
		{in: 999, want: "999"},
		{in: 150000, want: "150.000"},
		{in: 1250000, want: "1.250.000"},
		{in: -1500, want: "-1.500"},
		{in: math.MaxInt64, want: "9.223.372.036.854.775.807"},
		{in: math.MinInt64, want: "-9.223.372.036.854.775.808"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, rupiah(tt.in))
	}
}
