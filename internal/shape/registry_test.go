package shape

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timedata-generator/internal/diagnostic"
)

func entityContext() Context {
	return Context{
		KeyClass:      "ColorRGB255",
		KeyModel:      "RGB",
		KeyRange:      255.0,
		KeyProperties: []string{"red", "green", "blue"},
	}
}

func collectionContext() Context {
	ctx := entityContext()
	ctx[KeyClass] = "ColorListRGB255"
	ctx[KeySampleClass] = "ColorRGB255"

	return ctx
}

func TestRegistry_Templates(t *testing.T) {
	r := MustNewRegistry()

	all := r.Templates()
	require.Len(t, all, 2)
	assert.Equal(t, KindEntity, all[0].Kind)
	assert.Equal(t, KindCollection, all[1].Kind)

	entity, err := r.Template(KindEntity)
	require.NoError(t, err)
	assert.Equal(t, "Color", entity.Name)
	assert.Contains(t, entity.Slots(), "__getitem__")
	assert.Contains(t, entity.Slots(), "range")

	_, err = r.Template(Kind(0))
	require.Error(t, err)
}

func TestInstantiate_Entity(t *testing.T) {
	r := MustNewRegistry()
	tmpl, err := r.Template(KindEntity)
	require.NoError(t, err)

	out, err := Instantiate(tmpl, entityContext())
	require.NoError(t, err)

	assert.Contains(t, out, "cdef class ColorRGB255:")
	assert.Contains(t, out, "cdef CColorRGB255 _instance")
	assert.Contains(t, out, "return 255.0")
	assert.Contains(t, out, "def red(self):\n        return self._instance[0]")
	assert.Contains(t, out, "def blue(self):\n        return self._instance[2]")
	assert.NotContains(t, out, "{{")

	for _, m := range tmpl.Methods {
		assert.Contains(t, out, "def "+m+"(", "method slot %s", m)
	}

	for _, p := range tmpl.Properties {
		assert.Contains(t, out, "def "+p+"(self)", "property slot %s", p)
	}
}

func TestInstantiate_Collection(t *testing.T) {
	r := MustNewRegistry()
	tmpl, err := r.Template(KindCollection)
	require.NoError(t, err)

	out, err := Instantiate(tmpl, collectionContext())
	require.NoError(t, err)

	assert.Contains(t, out, "cdef class ColorListRGB255:")
	assert.Contains(t, out, "cdef ColorRGB255 c = ColorRGB255()")
	assert.Contains(t, out, "return [c[1] for c in self]")

	for _, s := range tmpl.Slots() {
		assert.Contains(t, out, "def "+s+"(", "slot %s", s)
	}
}

func TestInstantiate_Deterministic(t *testing.T) {
	r := MustNewRegistry()
	tmpl, err := r.Template(KindCollection)
	require.NoError(t, err)

	a, err := Instantiate(tmpl, collectionContext())
	require.NoError(t, err)
	b, err := Instantiate(tmpl, collectionContext())
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestInstantiate_MissingKey(t *testing.T) {
	r := MustNewRegistry()
	entity, err := r.Template(KindEntity)
	require.NoError(t, err)
	collection, err := r.Template(KindCollection)
	require.NoError(t, err)

	ctx := entityContext()
	delete(ctx, KeyRange)

	_, err = Instantiate(entity, ctx)
	require.ErrorIs(t, err, diagnostic.ErrMissingContextKey)

	var missing *diagnostic.MissingContextKeyError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, KeyRange, missing.Key)
	assert.Equal(t, "ColorRGB255", missing.Class)
	assert.Equal(t, "Color", missing.Template)

	// An entity context lacks the sample class a collection needs.
	_, err = Instantiate(collection, entityContext())
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, KeySampleClass, missing.Key)
}

func TestInstantiate_InvalidValue(t *testing.T) {
	r := MustNewRegistry()
	tmpl, err := r.Template(KindEntity)
	require.NoError(t, err)

	tests := []struct {
		name string
		key  string
		val  any
	}{
		{"two channels", KeyProperties, []string{"red", "green"}},
		{"empty channel", KeyProperties, []string{"red", "", "blue"}},
		{"integer range", KeyRange, 255},
		{"zero range", KeyRange, 0.0},
		{"negative range", KeyRange, -1.0},
		{"empty class", KeyClass, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := entityContext()
			ctx[tt.key] = tt.val

			_, err := Instantiate(tmpl, ctx)
			require.ErrorIs(t, err, diagnostic.ErrInvalidContextValue)

			var invalid *diagnostic.InvalidContextValueError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.key, invalid.Key)
		})
	}
}

func TestPyFloat(t *testing.T) {
	assert.Equal(t, "1.0", pyFloat(1))
	assert.Equal(t, "255.0", pyFloat(255))
	assert.Equal(t, "256.0", pyFloat(256))
	assert.Equal(t, "0.5", pyFloat(0.5))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "Entity", KindEntity.String())
	assert.Equal(t, "Collection", KindCollection.String())
	assert.Equal(t, "Kind(0)", Kind(0).String())
}
