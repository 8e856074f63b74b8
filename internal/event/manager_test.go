package event

import "testing"

func TestDispatchReachesSubscribers(t *testing.T) {
	m := NewManager()

	var got []Type
	m.Subscribe(TypeDocumentMutated, func(e Event) bool {
		got = append(got, e.Type)
		return false
	})
	m.Subscribe(TypeDocumentMutated, func(e Event) bool {
		got = append(got, e.Type)
		return false
	})

	m.Dispatch(TypeDocumentMutated, DocumentMutatedData{Strategy: "replace", Caret: 3})

	if len(got) != 2 {
		t.Fatalf("Dispatch reached %d handlers, want 2", len(got))
	}
	for _, typ := range got {
		if typ != TypeDocumentMutated {
			t.Errorf("handler saw type %v, want %v", typ, TypeDocumentMutated)
		}
	}
}

func TestDispatchCarriesData(t *testing.T) {
	m := NewManager()

	var data HistoryMovedData
	m.Subscribe(TypeHistoryMoved, func(e Event) bool {
		data = e.Data.(HistoryMovedData)
		return true
	})

	m.Dispatch(TypeHistoryMoved, HistoryMovedData{Direction: "undo", Index: 4})

	if data.Direction != "undo" || data.Index != 4 {
		t.Errorf("handler got %+v, want {undo 4}", data)
	}
}

func TestDispatchWithoutHandlers(t *testing.T) {
	m := NewManager()
	// Must not panic or block.
	m.Dispatch(TypeParseFallback, ParseFallbackData{Reason: "no tags"})
}

func TestSubscribeDuringDispatch(t *testing.T) {
	m := NewManager()

	calls := 0
	m.Subscribe(TypeRequestStarted, func(e Event) bool {
		calls++
		m.Subscribe(TypeRequestStarted, func(Event) bool {
			calls++
			return false
		})
		return false
	})

	m.Dispatch(TypeRequestStarted, RequestStartedData{ID: "r1"})
	if calls != 1 {
		t.Errorf("first dispatch ran %d handlers, want 1", calls)
	}

	m.Dispatch(TypeRequestStarted, RequestStartedData{ID: "r2"})
	if calls != 3 {
		t.Errorf("second dispatch brought total to %d, want 3", calls)
	}
}
