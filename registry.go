package restring

// Builtin names under which the columnar operations are conventionally
// registered in a host runtime's function registry.
const (
	OpSplit         = "split"
	OpRegexpReplace = "regexp_replace"
	OpRegexpExtract = "regexp_extract"
	OpRLike         = "rlike"
	OpStartsWith    = "startswith"
	OpEndsWith      = "endswith"
	OpContainsAny   = "contains_any"
)

// Builtins returns the columnar operations keyed by their conventional
// names, for explicit registration with a host data-processing runtime.
// Registration is always opt-in configuration on the host side; this
// package never mutates global state of another library.
//
// Example:
//
//	ops := restring.NewOps(cfg)
//	for name, fn := range ops.Builtins() {
//	    host.RegisterFunction(name, fn)
//	}
func (o *Ops) Builtins() map[string]any {
	return map[string]any{
		OpSplit:         o.SplitCol,
		OpRegexpReplace: o.ReplaceAllCol,
		OpRegexpExtract: o.ExtractCol,
		OpRLike:         o.MatchCol,
		OpStartsWith:    o.HasPrefixCol,
		OpEndsWith:      o.HasSuffixCol,
		OpContainsAny:   o.ContainsAnyCol,
	}
}
