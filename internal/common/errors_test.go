package common

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserError(t *testing.T) {
	err := NewUserError("dataset not found at apps.csv", fs.ErrNotExist)

	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, "dataset not found at apps.csv: file does not exist", err.Error())
	assert.Equal(t, "dataset not found at apps.csv", Describe(err))
	assert.Equal(t, "dataset not found at apps.csv", Describe(fmt.Errorf("load: %w", err)))

	bare := NewUserError("nothing to export", nil)
	assert.Equal(t, "nothing to export", bare.Error())
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "", Describe(nil))
	assert.Equal(t, "boom", Describe(errors.New("boom")))
}

func TestInvalidInput(t *testing.T) {
	err := InvalidInput("Price_Num", "must not be negative")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.EqualError(t, err, "invalid input: Price_Num must not be negative")
}

func TestIsRecoverable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{InvalidInput("Reviews", "is empty"), true},
		{fmt.Errorf("%w: Category %q", ErrEncoding, "SPACE"), true},
		{ErrEmptyResult, true},
		{ErrInvalidConfig, false},
		{errors.New("disk full"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsRecoverable(tt.err), "%v", tt.err)
	}
}
