package db

import "testing"

func TestCategoryListRoundTrip(t *testing.T) {
	encoded, err := EncodeCategories([]string{"Animals", "Cities"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	room := Room{Categories: encoded}
	got := room.CategoryList()
	if len(got) != 2 || got[0] != "Animals" || got[1] != "Cities" {
		t.Fatalf("unexpected categories: %v", got)
	}
}

func TestCategoryListEmptyAndMalformed(t *testing.T) {
	var room Room
	if room.CategoryList() != nil {
		t.Fatalf("expected nil for an unset column")
	}

	room.Categories = []byte("not json")
	if room.CategoryList() != nil {
		t.Fatalf("expected nil for a malformed column")
	}

	encoded, err := EncodeCategories(nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(encoded) != "[]" {
		t.Fatalf("expected empty list, got %s", encoded)
	}
}
