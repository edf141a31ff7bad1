// Package querydsl parses JSON query documents into immutable, typed
// clause builders. A builder describes one query clause; turning it into
// an executable query is the downstream engine's job.
package querydsl

// DefaultBoost is the boost every clause carries unless the document sets
// its own.
const DefaultBoost = 1.0

// Builder is the immutable description of one parsed clause. Source
// returns the canonical single-key document form, suitable for
// serialization and for feeding back through a parser.
type Builder interface {
	WriterName() string
	Source() map[string]any
}

// EmptyBuilder is what an empty inner query object parses to. Its
// prototype doubles as the default inner query on clause prototypes.
type EmptyBuilder struct{}

var emptyPrototype = EmptyBuilder{}

func (EmptyBuilder) WriterName() string {
	return "empty"
}

func (EmptyBuilder) Source() map[string]any {
	return map[string]any{}
}
