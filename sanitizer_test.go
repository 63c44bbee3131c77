package airdesk_test

import (
	"strings"
	"testing"

	"github.com/aretw0/airdesk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		limit   int
		want    string
		wantErr error
	}{
		{name: "plain", input: "book a flight", want: "book a flight"},
		{name: "keeps newlines and tabs", input: "yes\n\tplease", want: "yes\n\tplease"},
		{name: "strips escape and null", input: "can\x1b[31mcel\x00", want: "can[31mcel"},
		{name: "unicode", input: "Bengaluru → Delhi", want: "Bengaluru → Delhi"},
		{name: "too large", input: strings.Repeat("a", 11), limit: 10, wantErr: airdesk.ErrInputTooLarge},
		{name: "default limit", input: strings.Repeat("a", airdesk.DefaultMaxInputSize+1), wantErr: airdesk.ErrInputTooLarge},
		{name: "invalid utf8", input: "abc\xff", wantErr: airdesk.ErrInvalidUTF8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := airdesk.SanitizeInput(tt.input, tt.limit)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, airdesk.IsInputError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
