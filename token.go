package vktor

// Kind is the type of a JSON token emitted by the tokenizer.
type Kind int8

// Token kinds. KindNone is the zero value, held before the first token is
// read.
const (
	KindNone Kind = iota
	KindNull
	KindFalse
	KindTrue
	KindInt
	KindFloat
	KindString
	KindArrayStart
	KindArrayEnd
	KindObjectStart
	KindObjectKey
	KindObjectEnd
	numKinds
)

var kindStrings = [numKinds]string{
	"<none>", "null", "false", "true", "int", "float", "string",
	"array-start", "array-end", "object-start", "object-key", "object-end",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "<unknown>"
	}
	return kindStrings[k]
}

// Container is the kind of JSON structure (array or object) enclosing the
// current token, or ContainerNone at the top level.
type Container int8

const (
	ContainerNone Container = iota
	ContainerArray
	ContainerObject
	numContainers
)

var containerStrings = [numContainers]string{"<none>", "array", "object"}

func (c Container) String() string {
	if c < 0 || c >= numContainers {
		return "<unknown>"
	}
	return containerStrings[c]
}

// Status is the outcome of a single call to Parser.Parse.
type Status int8

const (
	// StatusError indicates an unrecoverable error for this parser
	// instance; further calls to Parse return the same error.
	StatusError Status = iota
	// StatusToken indicates a token was produced; inspect it via the
	// Parser accessor methods.
	StatusToken
	// StatusNeedMore indicates the input was exhausted mid-parse; Feed
	// more bytes (or call Close if no more are coming) and call Parse
	// again.
	StatusNeedMore
	// StatusComplete indicates the top-level value is fully closed and
	// no further tokens will be produced.
	StatusComplete
	numStatuses
)

var statusStrings = [numStatuses]string{"error", "token", "need-more", "complete"}

func (s Status) String() string {
	if s < 0 || s >= numStatuses {
		return "<unknown>"
	}
	return statusStrings[s]
}
