package shape

import (
	"bytes"
	"embed"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"timedata-generator/internal/diagnostic"
)

// Context keys. A template's Required list is drawn from these.
const (
	KeyClass       = "class"
	KeyModel       = "model"
	KeyRange       = "range"
	KeyProperties  = "properties"
	KeySampleClass = "sampleclass"
)

// ChannelCount is the number of channel properties every color model has.
const ChannelCount = 3

//go:embed templates/*.tmpl
var templateFS embed.FS

// Context maps placeholder keys to concrete values for one instantiation.
type Context map[string]any

// Class returns the target class name, or "" if it is unset.
func (c Context) Class() string {
	s, _ := c[KeyClass].(string)
	return s
}

// SampleClass returns the paired entity class of a collection context.
func (c Context) SampleClass() string {
	s, _ := c[KeySampleClass].(string)
	return s
}

// Model returns the color model name of the context.
func (c Context) Model() string {
	s, _ := c[KeyModel].(string)
	return s
}

// Template is one generic class shape. It never carries concrete names.
type Template struct {
	Kind Kind
	// Name is the generic class name the template stands for.
	Name string
	// Methods are the method slots every instantiation defines.
	Methods []string
	// Properties are the fixed property slots. Channel properties come from
	// the context's properties key.
	Properties []string
	// Required is the placeholder schema: keys a context must provide.
	Required []string

	body *template.Template
}

// Slots returns the method slots followed by the property slots.
func (t *Template) Slots() []string {
	return slices.Concat(t.Methods, t.Properties)
}

// Registry holds the built-in templates. It is immutable once built.
type Registry struct {
	templates map[Kind]*Template
}

var funcs = template.FuncMap{
	"join":    strings.Join,
	"pyfloat": pyFloat,
	"ctype":   nativeType,
}

// NewRegistry parses the embedded template bodies.
func NewRegistry() (*Registry, error) {
	defs := []*Template{
		{
			Kind: KindEntity,
			Name: "Color",
			Methods: []string{
				"__init__", "__getitem__", "__setitem__", "__len__", "__richcmp__",
				"__repr__", "__str__", "copy", "limit_min", "limit_max", "scale",
			},
			Properties: []string{"model", "range"},
			Required:   []string{KeyClass, KeyModel, KeyRange, KeyProperties},
		},
		{
			Kind: KindCollection,
			Name: "ColorList",
			Methods: []string{
				"__init__", "__getitem__", "__setitem__", "__len__", "__iter__", "__richcmp__",
				"__repr__", "__str__", "append", "extend", "clear", "reverse", "duplicate",
			},
			Properties: []string{"model", "range", "sample_class"},
			Required:   []string{KeyClass, KeyModel, KeyRange, KeyProperties, KeySampleClass},
		},
	}

	r := &Registry{templates: make(map[Kind]*Template, len(defs))}

	for _, def := range defs {
		file := "templates/" + strings.ToLower(def.Kind.String()) + ".pyx.tmpl"

		src, err := templateFS.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", file, err)
		}

		def.body, err = template.New(def.Name).Funcs(funcs).Option("missingkey=error").Parse(string(src))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", file, err)
		}

		r.templates[def.Kind] = def
	}

	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on error.
func MustNewRegistry() *Registry {
	r, err := NewRegistry()
	if err != nil {
		panic(err)
	}

	return r
}

// Template returns the template for the given kind.
func (r *Registry) Template(kind Kind) (*Template, error) {
	t, ok := r.templates[kind]
	if !ok {
		return nil, fmt.Errorf("no template registered for kind %s", kind)
	}

	return t, nil
}

// Templates returns all templates ordered by kind.
func (r *Registry) Templates() []*Template {
	res := make([]*Template, 0, len(r.templates))
	for _, t := range r.templates {
		res = append(res, t)
	}

	slices.SortFunc(res, func(a, b *Template) int { return int(a.Kind) - int(b.Kind) })

	return res
}

// Instantiate applies ctx to t and returns the resolved source text.
// It fails with a MissingContextKeyError if ctx omits a required key and
// with an InvalidContextValueError if a known key has the wrong shape.
func Instantiate(t *Template, ctx Context) (string, error) {
	for _, key := range t.Required {
		if _, ok := ctx[key]; !ok {
			return "", &diagnostic.MissingContextKeyError{Template: t.Name, Class: ctx.Class(), Key: key}
		}
	}

	if err := checkValues(t, ctx); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.body.Execute(&buf, map[string]any(ctx)); err != nil {
		return "", fmt.Errorf("executing template %s for %s: %w", t.Name, ctx.Class(), err)
	}

	return buf.String(), nil
}

func checkValues(t *Template, ctx Context) error {
	invalid := func(key, reason string) error {
		return &diagnostic.InvalidContextValueError{Template: t.Name, Class: ctx.Class(), Key: key, Reason: reason}
	}

	for _, key := range []string{KeyClass, KeyModel, KeySampleClass} {
		v, ok := ctx[key]
		if !ok {
			continue
		}

		if s, isStr := v.(string); !isStr || s == "" {
			return invalid(key, "must be a non-empty string")
		}
	}

	if v, ok := ctx[KeyRange]; ok {
		f, isFloat := v.(float64)
		if !isFloat || f <= 0 {
			return invalid(KeyRange, fmt.Sprintf("must be a positive float64, got %v", v))
		}
	}

	if v, ok := ctx[KeyProperties]; ok {
		props, isSlice := v.([]string)
		if !isSlice || len(props) != ChannelCount {
			return invalid(KeyProperties, fmt.Sprintf("must be exactly %d names, got %v", ChannelCount, v))
		}

		if slices.Contains(props, "") {
			return invalid(KeyProperties, "channel names must be non-empty")
		}
	}

	return nil
}

// pyFloat renders a float the way a Python float literal reads: 1.0, 255.0, 0.5.
func pyFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}

	return s
}

// nativeType names the wrapped native type of a generated class.
func nativeType(class string) string {
	return "C" + class
}
