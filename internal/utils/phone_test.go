package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhoneNumber(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid US number", input: "+14155551234", wantErr: false},
		{name: "valid short number", input: "+6281", wantErr: false},
		{name: "valid max length", input: "+123456789012345", wantErr: false},
		{name: "empty", input: "", wantErr: true},
		{name: "missing plus", input: "14155551234", wantErr: true},
		{name: "leading zero", input: "+04155551234", wantErr: true},
		{name: "too long", input: "+1234567890123456", wantErr: true},
		{name: "letters", input: "+1415555abcd", wantErr: true},
		{name: "spaces", input: "+1 415 555 1234", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidatePhoneNumber(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.input, got)
		})
	}
}

func TestValidateOTPCode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "four digits", input: "1234", wantErr: false},
		{name: "six digits", input: "123456", wantErr: false},
		{name: "eight digits", input: "12345678", wantErr: false},
		{name: "empty", input: "", wantErr: true},
		{name: "too short", input: "123", wantErr: true},
		{name: "too long", input: "123456789", wantErr: true},
		{name: "letters", input: "12a456", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOTPCode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
