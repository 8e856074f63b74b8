package event

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Document events
	TypeDocumentMutated // content changed by an applied response
	TypeTitleChanged    // document title replaced

	// Assistant events
	TypeRequestStarted   // a command was dispatched to the model
	TypeRequestFinished  // a model response finished processing
	TypeSuggestionsReady // a response produced review notes instead of edits
	TypeParseFallback    // the parser had to recover structure heuristically

	// History events
	TypeHistoryMoved // undo or redo restored an earlier snapshot
)

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// DocumentMutatedData describes an applied content change.
type DocumentMutatedData struct {
	Strategy string // strategy that produced the change
	Caret    int    // caret byte offset after the change, -1 if unchanged
}

// TitleChangedData carries the new document title.
type TitleChangedData struct {
	Title string
}

// RequestStartedData identifies a dispatched model request.
type RequestStartedData struct {
	ID      string
	Command string
}

// RequestFinishedData reports the outcome of a model request.
type RequestFinishedData struct {
	ID       string
	Applied  bool   // whether the response mutated the document
	Thinking string // reasoning text extracted from the response, if any
	Err      error
}

// SuggestionsReadyData carries review notes extracted from a response.
type SuggestionsReadyData struct {
	RequestID   string
	Suggestions []string
}

// ParseFallbackData notes why the parser abandoned structured extraction.
type ParseFallbackData struct {
	Reason string
}

// HistoryMovedData reports an undo or redo step.
type HistoryMovedData struct {
	Direction string // "undo" or "redo"
	Index     int    // history index after the move
}
