package vocab

import (
	"strings"
	"testing"
)

func TestParse_StandardHeader(t *testing.T) {
	csv := "id,front,back\nw1,cat,猫\nw2,dog,犬\n"
	words, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
	if words[0] != (Word{ID: "w1", Front: "cat", Back: "猫"}) {
		t.Errorf("unexpected first word: %+v", words[0])
	}
}

func TestParse_LegacyHeaderAliases(t *testing.T) {
	csv := "id,english,japanese\nw1,water,水\n"
	words, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(words) != 1 || words[0].Front != "water" || words[0].Back != "水" {
		t.Errorf("alias columns not mapped: %+v", words)
	}
}

func TestParse_ColumnOrderFromHeader(t *testing.T) {
	csv := "back,id,front\n犬,w1,dog\n"
	words, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(words) != 1 || words[0] != (Word{ID: "w1", Front: "dog", Back: "犬"}) {
		t.Errorf("column order not respected: %+v", words)
	}
}

func TestParse_SkipsBadRows(t *testing.T) {
	csv := strings.Join([]string{
		"id,front,back",
		"w1,cat,猫",
		"w2,,犬",   // missing front
		"w3,bird", // short row
		",fish,魚", // missing id
		"w1,dup,重", // duplicate id
		"w4,horse,馬",
	}, "\n")
	words, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("expected 2 surviving words, got %d: %+v", len(words), words)
	}
	if words[0].ID != "w1" || words[1].ID != "w4" {
		t.Errorf("wrong survivors: %+v", words)
	}
	if words[0].Front != "cat" {
		t.Errorf("duplicate id should not replace the first occurrence: %+v", words[0])
	}
}

func TestParse_MissingColumnsIsFatal(t *testing.T) {
	csv := "id,front\nw1,cat\n"
	if _, err := Parse(strings.NewReader(csv)); err == nil {
		t.Fatal("expected error for header without a back column")
	}
}

func TestParse_EmptyInput(t *testing.T) {
	words, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(words) != 0 {
		t.Errorf("expected no words, got %+v", words)
	}
}

func TestParse_TrimsWhitespace(t *testing.T) {
	csv := "id, front, back\nw1, cat , 猫 \n"
	words, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(words) != 1 || words[0].Front != "cat" || words[0].Back != "猫" {
		t.Errorf("fields not trimmed: %+v", words)
	}
}
