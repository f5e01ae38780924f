package gen

import (
	"bytes"
	"fmt"
	"path"
	"text/template"
)

// StructFiles lists the struct layouts emitted on every run.
var StructFiles = []string{"timedata/signal/render3"}

// StructLayout describes a native struct wrapped by a generated class.
type StructLayout struct {
	// ID is the struct file identifier, e.g. "timedata/signal/render3".
	ID string
	// Name is the native struct name.
	Name string
	// Namespace is the native namespace holding the struct.
	Namespace string
	Fields    []StructField
}

// StructField is one member of a StructLayout.
type StructField struct {
	Name string
	// Type is the native member type.
	Type string
	// Default is the value the wrapper resets the member to.
	Default string
}

// Header returns the native header declaring the struct.
func (s StructLayout) Header() string {
	return s.ID + ".h"
}

var structLayouts = map[string]StructLayout{
	"timedata/signal/render3": {
		ID:        "timedata/signal/render3",
		Name:      "Render3",
		Namespace: "timedata",
		Fields: []StructField{
			{Name: "min", Type: "float", Default: "0"},
			{Name: "max", Type: "float", Default: "255"},
			{Name: "scale", Type: "float", Default: "255"},
			{Name: "offset", Type: "float", Default: "0"},
			{Name: "gamma", Type: "float", Default: "1"},
			{Name: "permutation", Type: "uint8_t", Default: "0"},
		},
	},
}

// EmitStructs renders the wrapper fragment for each struct id. Content
// depends only on the fixed layout table.
func EmitStructs(ids []string) ([]Artifact, error) {
	res := make([]Artifact, 0, len(ids))

	for _, id := range ids {
		layout, ok := structLayouts[id]
		if !ok {
			return nil, fmt.Errorf("unknown struct file %q", id)
		}

		var buf bytes.Buffer
		if err := structTemplate.Execute(&buf, layout); err != nil {
			return nil, fmt.Errorf("executing struct template for %s: %w", id, err)
		}

		res = append(res, Artifact{Path: StructPath(id), Content: buf.Bytes()})
	}

	return res, nil
}

// StructPath returns the output path of a struct wrapper fragment.
func StructPath(id string) string {
	return path.Clean(id) + ".pyx"
}

var structTemplate = template.Must(template.New("struct").Parse(`# Code generated by timedata-generator. DO NOT EDIT.

from libc.stdint cimport uint8_t

cdef extern from "<{{.Header}}>" namespace "{{.Namespace}}":
    struct C{{.Name}} "{{.Namespace}}::{{.Name}}":
{{- range .Fields}}
        {{.Type}} {{.Name}}
{{- end}}

cdef class {{.Name}}:
    cdef C{{.Name}} cdata

    def __cinit__(self):
        self.clear()

    def clear(self):
{{- range .Fields}}
        self.cdata.{{.Name}} = {{.Default}}
{{- end}}

    def __str__(self):
        return ", ".join("%s=%s" % (k, getattr(self, k)) for k in self.FIELDS)

    FIELDS = ({{range .Fields}}"{{.Name}}", {{end}})
{{range .Fields}}
    @property
    def {{.Name}}(self):
        return self.cdata.{{.Name}}

    @{{.Name}}.setter
    def {{.Name}}(self, {{.Type}} x):
        self.cdata.{{.Name}} = x
{{end}}`))
