package ir

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonicalSortsKeys(t *testing.T) {
	v := map[string]any{
		"zeta":  1,
		"alpha": 2,
		"mu":    3,
	}
	out, err := MarshalCanonical(v)
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":2,"mu":3,"zeta":1}`, string(out))
}

func TestMarshalCanonicalIsDeterministic(t *testing.T) {
	v := map[string]any{
		"b": []any{1, 2, 3},
		"a": "hello",
	}
	first, err := MarshalCanonical(v)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := MarshalCanonical(v)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestMarshalCanonicalNeverEscapesHTML(t *testing.T) {
	out, err := MarshalCanonical("<script>")
	require.NoError(t, err)
	assert.Equal(t, `"<script>"`, string(out))
}

func TestMarshalCanonicalNFCNormalizesStrings(t *testing.T) {
	decomposed := "é"
	composed := "é"

	outDecomposed, err := MarshalCanonical(decomposed)
	require.NoError(t, err)
	outComposed, err := MarshalCanonical(composed)
	require.NoError(t, err)

	assert.Equal(t, outComposed, outDecomposed)
}

func TestMarshalCanonicalNFCNormalizesMapKeysWithoutLosingValues(t *testing.T) {
	decomposed := "é" // e + combining acute accent, not the precomposed form
	composed := "é"
	require.NotEqual(t, composed, decomposed, "fixture must be byte-distinct to exercise NFC normalization")

	v := map[string]any{decomposed: "value"}

	out, err := MarshalCanonical(v)
	require.NoError(t, err)
	assert.Equal(t, `{"`+composed+`":"value"}`, string(out))
}

func TestMarshalCanonicalRejectsNonFiniteFloat(t *testing.T) {
	_, err := MarshalCanonical(map[string]any{"x": math.Inf(1)})
	require.Error(t, err)
}

func TestMarshalCanonicalNullAndBool(t *testing.T) {
	out, err := MarshalCanonical(nil)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))

	out, err = MarshalCanonical(true)
	require.NoError(t, err)
	assert.Equal(t, "true", string(out))

	out, err = MarshalCanonical(false)
	require.NoError(t, err)
	assert.Equal(t, "false", string(out))
}

func TestMarshalCanonicalRejectsUnsupportedType(t *testing.T) {
	_, err := MarshalCanonical(struct{ X int }{X: 1})
	assert.Error(t, err)
}

func TestMarshalCanonicalNestedStructures(t *testing.T) {
	v := map[string]any{
		"nodes": []any{
			map[string]any{"id": "a", "kind": "change_source"},
			map[string]any{"id": "b", "kind": "derived"},
		},
	}
	out, err := MarshalCanonical(v)
	require.NoError(t, err)
	assert.Equal(t, `{"nodes":[{"id":"a","kind":"change_source"},{"id":"b","kind":"derived"}]}`, string(out))
}
