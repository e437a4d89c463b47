package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateContext(t *testing.T) {
	assert.NoError(t, validateContext(context.Background()))
	//nolint:staticcheck // nil context is the case under test
	assert.ErrorIs(t, validateContext(nil), ErrNilContext)
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name    string
		str     string
		wantErr bool
	}{
		{name: "valid string", str: "test"},
		{name: "empty string", str: "", wantErr: true},
		{name: "whitespace only", str: "   ", wantErr: true},
		{name: "string with spaces", str: "  test  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.str, "param")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrEmptyString)
				return
			}
			assert.NoError(t, err)
		})
	}
}
