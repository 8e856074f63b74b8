package clipboard

import "testing"

func TestRegisterRoundTrip(t *testing.T) {
	m := NewManager(false)

	if err := m.Write("suggestion text"); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	got, err := m.Read()
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if got != "suggestion text" {
		t.Errorf("Read() = %q, want %q", got, "suggestion text")
	}
}

func TestReadEmptyRegister(t *testing.T) {
	m := NewManager(false)

	got, err := m.Read()
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if got != "" {
		t.Errorf("Read() = %q, want empty", got)
	}
}

func TestWriteOverwritesRegister(t *testing.T) {
	m := NewManager(false)

	if err := m.Write("first"); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if err := m.Write("second"); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	got, _ := m.Read()
	if got != "second" {
		t.Errorf("Read() = %q, want %q", got, "second")
	}
}
