package terminal

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestTerminal_ReadLine(t *testing.T) {
	var out bytes.Buffer
	term := New(strings.NewReader("  3 \nAna\n"), &out)

	got, err := term.ReadLine("Seleccione una opcion: ")
	if err != nil {
		t.Fatalf("ReadLine() error = %v", err)
	}
	if got != "3" {
		t.Errorf("ReadLine() = %q, want %q", got, "3")
	}

	got, err = term.ReadLine("")
	if err != nil {
		t.Fatalf("ReadLine() error = %v", err)
	}
	if got != "Ana" {
		t.Errorf("ReadLine() = %q, want %q", got, "Ana")
	}

	if _, err := term.ReadLine("> "); err != io.EOF {
		t.Errorf("ReadLine() error = %v, want %v", err, io.EOF)
	}

	if want := "Seleccione una opcion: > "; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}
