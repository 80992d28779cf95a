package dispatch

// Resolver locates the dispatch set for a routine name at a call site.
// Implementations differ in how they search (lexical scope chain,
// receiver-type hierarchy) but share the ranking core. The returned version
// tags the set for cache invalidation: it must change whenever the set of
// candidates observable for the name changes.
type Resolver interface {
	Resolve(name string, call *Call) (candidates []*Candidate, version uint64, found bool)
}
