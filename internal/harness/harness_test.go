package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/parsely/internal/errors"
	"github.com/mcncl/parsely/internal/models"
)

func TestCompare_SampleDocument(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", "sample.json"))
	require.NoError(t, err)

	res, err := Compare(string(data), Dynamic, Static)
	require.NoError(t, err)
	require.True(t, res.OK)
	assert.Equal(t, "", res.Rest)

	obj, ok := res.Value.(models.Object)
	require.True(t, ok)
	assert.Equal(t, models.String("你好，世界！🌍"), obj["unicode_string"])
	assert.Equal(t, models.String(`!@#$%^&*()_+-=[]{}|;:'",.<>?/`+"`~"), obj["special_characters"])
	assert.Equal(t, models.Number(-2.718), obj["negative_float"])
	assert.Equal(t, models.Array{}, obj["empty_array"])
	assert.Equal(t,
		models.Array{models.Array{models.Array{models.Array{models.String("deep")}}}},
		obj["deeply_nested_array"])
}

func TestCompare_Agreement(t *testing.T) {
	inputs := []string{
		"null",
		"true",
		" false ",
		"[1,2,3]",
		"{}",
		"[]",
		`{"a":1,"a":2}`,
		`"a\n"`,
		`"\u0041\ud83d\ude00"`,
		`[[[["deep"]]]]`,
		"-12.0050e+7",
		"1e10 trailing",
		`"abc`,
		"[1,]",
		"[1,2}",
		`"\udfff"`,
		"",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Compare(input, Dynamic, Static)
			assert.NoError(t, err)
		})
	}
}

func TestCompare_FailureIsNotAnError(t *testing.T) {
	res, err := Compare("[1,2}", Dynamic, Static)
	require.NoError(t, err)
	assert.False(t, res.OK)
}

func TestCompare_DetectsMismatch(t *testing.T) {
	stub := func(v models.Value, rest string, ok bool) Realization {
		return Realization{Name: "stub", Parse: func(string) (models.Value, string, bool) { return v, rest, ok }}
	}

	tests := []struct {
		name string
		b    Realization
	}{
		{name: "different value", b: stub(models.Array{models.Number(1), models.Number(3)}, "", true)},
		{name: "different order", b: stub(models.Array{models.Number(2), models.Number(1)}, "", true)},
		{name: "different remainder", b: stub(models.Array{models.Number(1), models.Number(2)}, "x", true)},
		{name: "one fails", b: stub(nil, "", false)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compare("[1,2]", Dynamic, tt.b)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrEngineMismatch)
			assert.ErrorIs(t, err, &errors.AppError{Type: errors.ErrorTypeEquivalence})
		})
	}
}

func TestEqual(t *testing.T) {
	a := models.Object{"x": models.Number(1), "y": models.Array{models.String("s"), models.Null{}}}
	b := models.Object{"y": models.Array{models.String("s"), models.Null{}}, "x": models.Number(1.0)}
	assert.True(t, Equal(a, b), "object key order does not matter")
	assert.Empty(t, Diff(a, b))

	assert.False(t, Equal(models.String("1"), models.Number(1)))
	assert.False(t, Equal(models.Bool(false), models.Null{}))
	assert.True(t, Equal(models.Array{}, models.Array(nil)))
	assert.NotEmpty(t, Diff(models.Array{models.Number(1)}, models.Array{models.Number(2)}))
}
