package shape

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind selects one of the two template shapes.
type Kind int

const (
	_ Kind = iota // zero value is invalid

	// KindEntity is a single logical value, one color sample.
	KindEntity
	// KindCollection is an ordered homogeneous sequence of entities.
	KindCollection
)
