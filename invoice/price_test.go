package invoice

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "3,45", want: "3.45"},
		{input: " 0,00 ", want: "0"},
		{input: "12", want: "12"},
		{input: "1.204,50", want: "1204.5"},
		{input: "4.10", want: "4.1"},
		{input: "1,2,3", wantErr: true},
		{input: "", wantErr: true},
		{input: "-1,00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePrice(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}
