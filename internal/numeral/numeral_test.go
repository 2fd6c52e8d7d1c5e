package numeral

import "testing"

// Grounded directly on _examples/original_source/tests/test_numbers.py.
func TestDecodeBasicDigits(t *testing.T) {
	cases := map[string]string{
		"零":  "0",
		"〇":  "0",
		"一二三": "123",
	}
	for in, want := range cases {
		got, err := Decode(in)
		if err != nil {
			t.Fatalf("Decode(%q) error: %v", in, err)
		}
		if got != want {
			t.Errorf("Decode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDecodeUnits(t *testing.T) {
	cases := map[string]string{
		"十":    "10",
		"十二":   "12",
		"二十":   "20",
		"二十一":  "21",
		"一百零二": "102",
		"三千零五": "3005",
	}
	for in, want := range cases {
		got, err := Decode(in)
		if err != nil {
			t.Fatalf("Decode(%q) error: %v", in, err)
		}
		if got != want {
			t.Errorf("Decode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDecodeLargeUnits(t *testing.T) {
	cases := map[string]string{
		"一萬零三":          "10003",
		"一億二千三百四十五萬六千七百八十九": "123456789",
	}
	for in, want := range cases {
		got, err := Decode(in)
		if err != nil {
			t.Fatalf("Decode(%q) error: %v", in, err)
		}
		if got != want {
			t.Errorf("Decode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDecodeDot(t *testing.T) {
	cases := map[string]string{
		"一·二三": "1.23",
		"零·三":  "0.3",
	}
	for in, want := range cases {
		got, err := Decode(in)
		if err != nil {
			t.Fatalf("Decode(%q) error: %v", in, err)
		}
		if got != want {
			t.Errorf("Decode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDecodeDecimalUnits(t *testing.T) {
	cases := map[string]string{
		"分":     "0.1",
		"三分":    "0.3",
		"負三分":   "-0.3",
		"一又二分三釐": "1.23",
		"一又二":   "3",
	}
	for in, want := range cases {
		got, err := Decode(in)
		if err != nil {
			t.Fatalf("Decode(%q) error: %v", in, err)
		}
		if got != want {
			t.Errorf("Decode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDecodeInvalid(t *testing.T) {
	invalid := []string{"負負一", "一·二·三", "一又", "二釐分", "·三", "三·", "一又二又三"}
	for _, in := range invalid {
		if _, err := Decode(in); err == nil {
			t.Errorf("Decode(%q) expected error, got none", in)
		}
	}
}

func TestDecodeLargeIntegerExact(t *testing.T) {
	got, err := Decode("一垓")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "100000000000000000000" {
		t.Errorf("Decode(一垓) = %q", got)
	}
}

func TestDecodeLargeNegativeIntegerExact(t *testing.T) {
	got, err := Decode("負一垓")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "-100000000000000000000" {
		t.Errorf("Decode(負一垓) = %q", got)
	}
}
