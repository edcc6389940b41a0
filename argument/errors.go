package argument

// ParseError is the hard failure of the resolver: positional access past the
// end of the tokens, an out-of-range SetIndex, or a conversion that has no
// default to fall back to.
type ParseError struct {
	Message string
	// Cause holds the underlying conversion error, if any.
	Cause error
}

func (e *ParseError) Error() string {
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

var _ error = (*ParseError)(nil)
