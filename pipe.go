package spanx

import "iter"

// PipeOptions controls what Pipe yields
type PipeOptions struct {
	// BatchSize is a hint for how many documents a caller feeds at once.
	// Documents are always matched one at a time in input order.
	BatchSize int
	// ReturnMatches attaches the matches of each document to its output
	ReturnMatches bool
	// AsTuples treats inputs as (document, context) pairs and carries the
	// context through to the output
	AsTuples bool
}

// PipeInput is a document with optional caller context
type PipeInput struct {
	Doc     *Doc
	Context any
}

// PipeOutput is the result for one PipeInput. Matches is set only with
// ReturnMatches and Context only with AsTuples.
type PipeOutput struct {
	Doc     *Doc
	Matches []Match
	Context any
}

// Docs wraps documents without context for Pipe
func Docs(docs ...*Doc) iter.Seq[PipeInput] {
	return func(yield func(PipeInput) bool) {
		for _, doc := range docs {
			if !yield(PipeInput{Doc: doc}) {
				return
			}
		}
	}
}

// Pipe lazily matches every document of in with e and yields one output
// per input in the same order. Each document is matched when it is pulled;
// stopping the iteration stops matching.
func Pipe(e Engine, in iter.Seq[PipeInput], opts PipeOptions) iter.Seq[PipeOutput] {
	return func(yield func(PipeOutput) bool) {
		for input := range in {
			matches := e.Match(input.Doc)
			out := PipeOutput{Doc: input.Doc}
			if opts.ReturnMatches {
				out.Matches = matches
			}
			if opts.AsTuples {
				out.Context = input.Context
			}
			if !yield(out) {
				return
			}
		}
	}
}
