package utils

import "errors"

// Kind marks the pipeline stage an error comes from
type Kind int

const (
	// KindUnknown is returned by KindOf for untagged errors
	KindUnknown Kind = iota
	// KindStorage object store failure
	KindStorage
	// KindGeneration generative model call failure
	KindGeneration
	// KindParse model output does not follow the delimiter format
	KindParse
	// KindPersistence analytics append failure
	KindPersistence
)

var kindName = map[Kind]string{KindUnknown: "unknown", KindStorage: "storage", KindGeneration: "generation",
	KindParse: "parse", KindPersistence: "persistence"}

func (k Kind) String() string {
	return kindName[k]
}

// Error is an error tagged with the failing stage
type Error struct {
	Kind Kind
	err  error
}

// NewError wraps err with kind
func NewError(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, err: err}
}

func (e *Error) Error() string {
	return e.Kind.String() + " error: " + e.err.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}

// KindOf returns the kind of the first tagged error in err chain
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind checks err chain for kind
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
