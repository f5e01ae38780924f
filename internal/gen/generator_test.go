package gen

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timedata-generator/internal/diagnostic"
	"timedata-generator/internal/model"
	"timedata-generator/internal/plan"
	"timedata-generator/internal/shape"
)

func defaultPlan(t *testing.T) *plan.Plan {
	t.Helper()

	p, err := plan.Build(model.Default(), plan.Options{})
	require.NoError(t, err)

	return p
}

func TestGenerator_Instantiate_FullEnumeration(t *testing.T) {
	g := NewGenerator(DefaultGeneratorConfig())

	res, err := g.Instantiate(defaultPlan(t))
	require.NoError(t, err)

	// 3 RGB + HSV + HSL + YIQ entities, each with its collection.
	require.Len(t, res.Classes, 12)
	require.Len(t, res.Files, 12)

	for _, name := range []string{
		"ColorRGB", "ColorRGB255", "ColorRGB256", "ColorHSV", "ColorHSL", "ColorYIQ",
		"ColorListRGB", "ColorListRGB255", "ColorListRGB256", "ColorListHSV", "ColorListHSL", "ColorListYIQ",
	} {
		inst, ok := res.Classes[name]
		require.True(t, ok, name)
		assert.Equal(t, "timedata/color/"+name+".pyx", inst.Path)
		assert.Contains(t, string(inst.Content), "cdef class "+name+":")
	}

	assert.Equal(t, shape.KindEntity, res.Classes["ColorHSV"].Kind)
	assert.Equal(t, shape.KindCollection, res.Classes["ColorListHSV"].Kind)
	assert.Equal(t, "HSV", res.Classes["ColorListHSV"].Model)

	for i := 1; i < len(res.Files); i++ {
		assert.Less(t, res.Files[i-1].Path, res.Files[i].Path)
	}
}

func TestGenerator_Instantiate_EntityBeforeCollection(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	g := NewGenerator(DefaultGeneratorConfig(), WithLogger(logger))

	_, err := g.Instantiate(defaultPlan(t))
	require.NoError(t, err)

	var order []string

	for _, e := range hook.AllEntries() {
		if e.Message == "Instantiated class" {
			order = append(order, e.Data["class"].(string))
		}
	}

	// Name order except that ColorList<X> waits for Color<X>, which sorts
	// after it for RGB and YIQ.
	assert.Equal(t, []string{
		"ColorHSL", "ColorHSV", "ColorListHSL", "ColorListHSV",
		"ColorRGB", "ColorListRGB", "ColorRGB255", "ColorListRGB255",
		"ColorRGB256", "ColorListRGB256", "ColorYIQ", "ColorListYIQ",
	}, order)
}

func TestGenerator_Instantiate_Channels(t *testing.T) {
	g := NewGenerator(DefaultGeneratorConfig())

	res, err := g.Instantiate(defaultPlan(t))
	require.NoError(t, err)

	yiq := string(res.Classes["ColorYIQ"].Content)
	assert.Contains(t, yiq, "def luma(self):")
	assert.Contains(t, yiq, "def inphase(self):")
	assert.Contains(t, yiq, "def quadrature(self):")
	assert.NotContains(t, yiq, "def red(self):")

	rgb256 := string(res.Classes["ColorListRGB256"].Content)
	assert.Contains(t, rgb256, "return 256.0")
	assert.Contains(t, rgb256, "return ColorRGB256")
}

func TestGenerator_Instantiate_MissingContextKey(t *testing.T) {
	g := NewGenerator(DefaultGeneratorConfig())

	p := defaultPlan(t)
	delete(p.Entities[0], shape.KeyRange)

	_, err := g.Instantiate(p)
	require.ErrorIs(t, err, diagnostic.ErrMissingContextKey)
	assert.Contains(t, err.Error(), "ColorRGB")
	assert.Contains(t, err.Error(), `"range"`)
}

func TestGenerator_Instantiate_DuplicateClassName(t *testing.T) {
	g := NewGenerator(DefaultGeneratorConfig())

	p := defaultPlan(t)
	p.Entities = append(p.Entities, p.Entities[0])

	_, err := g.Instantiate(p)
	require.ErrorIs(t, err, diagnostic.ErrDuplicateClassName)
}

func TestGenerator_Instantiate_UndefinedSample(t *testing.T) {
	g := NewGenerator(DefaultGeneratorConfig())

	p := defaultPlan(t)
	p.Entities = p.Entities[1:]

	_, err := g.Instantiate(p)
	require.ErrorIs(t, err, diagnostic.ErrUndefinedSample)

	var undefined *diagnostic.UndefinedSampleError
	require.ErrorAs(t, err, &undefined)
	assert.Equal(t, "ColorListRGB", undefined.Collection)
}

func TestGenerator_ClassPath(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.ClassDir = "out/classes/"

	g := NewGenerator(cfg)
	assert.Equal(t, "out/classes/ColorRGB.pyx", g.ClassPath("ColorRGB"))
	assert.False(t, strings.Contains(g.ClassPath("ColorRGB"), "\\"))
}
