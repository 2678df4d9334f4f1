package script

import (
	"bytes"
	"testing"
)

func TestTextAsciiPassthrough(t *testing.T) {
	b, err := EncodeText("Chibi-Robo!")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b, []byte("Chibi-Robo!")) {
		t.Fatalf("ASCII changed under encoding: %q", b)
	}
	s, err := DecodeText(b)
	if err != nil {
		t.Fatal(err)
	}
	if s != "Chibi-Robo!" {
		t.Fatalf("decode = %q", s)
	}
}

func TestTextJapaneseRoundTrip(t *testing.T) {
	const text = "テレビを見る？"
	b, err := EncodeText(text)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(b, []byte(text)) {
		t.Fatal("expected a non-UTF-8 encoding")
	}
	s, err := DecodeText(b)
	if err != nil {
		t.Fatal(err)
	}
	if s != text {
		t.Fatalf("round trip = %q, want %q", s, text)
	}
}
