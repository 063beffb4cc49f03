package utils

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	assert.Equal(t, "storage error: olia", NewError(KindStorage, errors.New("olia")).Error())
	assert.Equal(t, "parse error: olia", NewError(KindParse, errors.New("olia")).Error())
}

func TestError_Unwrap(t *testing.T) {
	assert.True(t, errors.Is(NewError(KindPersistence, io.EOF), io.EOF))
}

func TestNewError_Nil(t *testing.T) {
	assert.Nil(t, NewError(KindStorage, nil))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: KindUnknown},
		{name: "plain", err: errors.New("olia"), want: KindUnknown},
		{name: "storage", err: NewError(KindStorage, io.EOF), want: KindStorage},
		{name: "wrapped", err: fmt.Errorf("can't do: %w", NewError(KindGeneration, io.EOF)), want: KindGeneration},
		{name: "persistence", err: NewError(KindPersistence, io.EOF), want: KindPersistence},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestIsKind(t *testing.T) {
	assert.True(t, IsKind(NewError(KindParse, io.EOF), KindParse))
	assert.False(t, IsKind(NewError(KindParse, io.EOF), KindStorage))
	assert.False(t, IsKind(nil, KindUnknown))
}
