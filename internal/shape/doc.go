// Package shape is the template registry.
//
// It holds the two generic class shapes (Entity and Collection) as
// text/template bodies with a declared set of method and property slots and
// an explicit required-key schema. Instantiate is a pure substitution: no
// numeric computation and no I/O.
package shape
