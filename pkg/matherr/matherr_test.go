package matherr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	simpleMessage         Pattern = "%s"
	columnIndex           Pattern = "column index (%d)"
	dimensionsMismatch2x2 Pattern = "got %dx%d but expected %dx%d"
)

func init() {
	_ = message.SetString(language.French, string(columnIndex), "index de colonne (%d)")
}

func TestMessageChain(t *testing.T) {
	e := New(KindInternal, columnIndex, 0)
	e.AddMessage(dimensionsMismatch2x2, 1, 2, 3, 4)

	// a caller higher up the stack adds its own explanation
	var err error = e
	var got *Error
	require.True(t, errors.As(err, &got))
	got.AddMessage(simpleMessage, "It didn't work out")

	sep := ": "
	want := "column index (0)" + sep + "got 1x2 but expected 3x4" + sep + "It didn't work out"
	assert.Equal(t, want, got.Message(language.AmericanEnglish, sep))
	assert.Equal(t, want, got.Error())
}

func TestMessageSeparator(t *testing.T) {
	e := New(KindInvalidArgument, columnIndex, 3).AddMessage(simpleMessage, "oops")
	assert.Equal(t, "column index (3) | oops", e.Message(language.AmericanEnglish, " | "))
}

func TestMessageLocalized(t *testing.T) {
	e := New(KindInternal, columnIndex, 7).AddMessage(simpleMessage, "fin")
	assert.Equal(t, "index de colonne (7) / fin", e.Message(language.French, " / "))
}

func TestContext(t *testing.T) {
	e := New(KindInternal, simpleMessage, "ctx")

	keys := []string{"Key 1", "Key 2"}
	values := []any{"Value 1", 2}
	for i := range keys {
		e.SetContext(keys[i], values[i])
	}

	assert.Equal(t, keys, e.ContextKeys())
	for i := range keys {
		assert.Equal(t, values[i], e.Context(keys[i]))
	}
	assert.Nil(t, e.Context("xyz"))

	// overwriting keeps the original key order
	e.SetContext("Key 1", "other")
	assert.Equal(t, keys, e.ContextKeys())
	assert.Equal(t, "other", e.Context("Key 1"))
}

func TestIsMatchesKind(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"same kind", New(KindUndefinedMetric, UndefinedBarycenter, 0.0), ErrUndefinedMetric, true},
		{"other kind", New(KindUndefinedMetric, UndefinedBarycenter, 0.0), ErrDimensionMismatch, false},
		{"wrapped", fmt.Errorf("region: %w", New(KindDimensionMismatch, DimensionMismatch, 1, 2)), ErrDimensionMismatch, true},
		{"plain error", errors.New("boom"), ErrInternal, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.target))
		})
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("parse failure")
	e := Wrap(cause, KindEvaluation, EvaluationFailed, cause)

	assert.ErrorIs(t, e, cause)
	assert.ErrorIs(t, e, ErrEvaluation)
	assert.Equal(t, KindEvaluation, KindOf(fmt.Errorf("outer: %w", e)))
	assert.Equal(t, KindInternal, KindOf(cause))
	assert.Equal(t, "evaluation failed: parse failure", e.Error())
	assert.Equal(t, "échec de l'évaluation : parse failure", e.Message(language.French, DefaultSeparator))
}

func TestEmptyChainFallsBackToKind(t *testing.T) {
	assert.Equal(t, "undefined metric", ErrUndefinedMetric.Error())
}
