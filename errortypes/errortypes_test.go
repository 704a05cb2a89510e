package errortypes

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadCode(t *testing.T) {
	assert.Equal(t, TimeoutErrorCode, ReadCode(&Timeout{Message: "too slow"}))
	assert.Equal(t, BadInputErrorCode, ReadCode(&BadInput{Message: "missing field"}))
	assert.Equal(t, ResolutionErrorCode, ReadCode(&ResolutionError{Message: "no match"}))
	assert.Equal(t, UnknownErrorCode, ReadCode(errors.New("plain")))
}

func TestBusinessErrorMessage(t *testing.T) {
	err := &BusinessError{NetworkCode: 2004, Message: "duplicate package"}
	assert.Equal(t, "network error 2004: duplicate package", err.Error())

	err.Hint = "an app with this package already exists"
	assert.Equal(t, "network error 2004: duplicate package (an app with this package already exists)", err.Error())
}

func TestContainsFatalError(t *testing.T) {
	assert.False(t, ContainsFatalError(nil))
	assert.True(t, ContainsFatalError([]error{&BadInput{Message: "bad"}}))
	assert.True(t, ContainsFatalError([]error{errors.New("uncoded errors are fatal")}))
}

func TestIsWarning(t *testing.T) {
	assert.False(t, IsWarning(&BadInput{Message: "bad"}))
	assert.False(t, IsWarning(errors.New("plain")))
}
