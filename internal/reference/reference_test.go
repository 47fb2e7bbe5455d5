package reference

import "testing"

func TestColumnLetterRoundTrip(t *testing.T) {
	cases := map[string]int{
		"A": 1, "Z": 26, "AA": 27, "AZ": 52, "BA": 53, "ZZ": 702, "AAA": 703,
	}
	for letters, num := range cases {
		if got := ColumnLetterToNumber(letters); got != num {
			t.Errorf("ColumnLetterToNumber(%q) = %d, want %d", letters, got, num)
		}
		if got := NumberToColumnLetter(num); got != letters {
			t.Errorf("NumberToColumnLetter(%d) = %q, want %q", num, got, letters)
		}
	}
}

func TestParseCell(t *testing.T) {
	got, ok := ParseCell("B12")
	if !ok || got != (CellNumber{Col: 2, Row: 12}) {
		t.Errorf("ParseCell(B12) = %+v, %v", got, ok)
	}

	if _, ok := ParseCell("12B"); ok {
		t.Errorf("ParseCell(12B) should fail")
	}
	if _, ok := ParseCell("A0"); ok {
		t.Errorf("ParseCell(A0) should fail: rows are 1-based")
	}
}

func TestParseRangeSingleCell(t *testing.T) {
	r, ok := ParseRange("C3")
	if !ok {
		t.Fatalf("ParseRange(C3) failed")
	}
	if r.Start != r.End || r.Start != (CellNumber{Col: 3, Row: 3}) {
		t.Errorf("ParseRange(C3) = %+v", r)
	}
}

func TestParseRangeNormalises(t *testing.T) {
	r, ok := ParseRange("B2:A1")
	if !ok {
		t.Fatalf("ParseRange(B2:A1) failed")
	}
	if r.Start.Col > r.End.Col || r.Start.Row > r.End.Row {
		t.Errorf("ParseRange(B2:A1) not normalised: %+v", r)
	}
	if r.Start != (CellNumber{Col: 1, Row: 1}) || r.End != (CellNumber{Col: 2, Row: 2}) {
		t.Errorf("ParseRange(B2:A1) = %+v, want start A1 end B2", r)
	}
}

func TestParseRangeMalformed(t *testing.T) {
	for _, ref := range []string{"", "A1:", "1A", "A1:B2:C3", "AAAA1"} {
		if _, ok := ParseRange(ref); ok {
			t.Errorf("ParseRange(%q) should fail", ref)
		}
	}
}
