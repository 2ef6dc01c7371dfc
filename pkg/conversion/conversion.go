package conversion

// Conversion bundles the two dispatchers and their shared mapper.
// Features register their handlers against it once, at setup time; the
// dispatchers are then safe for any number of sequential passes.
type Conversion struct {
	Upcast   *UpcastDispatcher
	Downcast *DowncastDispatcher
}

// New creates a conversion with empty handler lists, the default text
// upcast handler installed, and a mapper shared by both directions.
func New() *Conversion {
	mapper := NewMapper()
	up := NewUpcastDispatcher(TextHandler())
	up.BindMapper(mapper)
	return &Conversion{
		Upcast:   up,
		Downcast: NewDowncastDispatcher(mapper),
	}
}
