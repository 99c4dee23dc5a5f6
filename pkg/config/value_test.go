package config

import (
	"bytes"
	"encoding/json"
	"reflect"
	"testing"
)

func TestIsEmpty(t *testing.T) {
	empty := []Value{nil, Scalar(""), Sequence{}, Sequence(nil), Map{}}
	for _, v := range empty {
		if !IsEmpty(v) {
			t.Errorf("%#v should be empty", v)
		}
	}
	full := []Value{Scalar("x"), Sequence{Scalar("x")}, Map{"k": Scalar("v")}}
	for _, v := range full {
		if IsEmpty(v) {
			t.Errorf("%#v should not be empty", v)
		}
	}
}

func TestFromAny_NumbersStayTextual(t *testing.T) {
	dec := json.NewDecoder(bytes.NewReader([]byte(`{"count":3,"ratio":0.5,"name":"x"}`)))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		t.Fatalf("decode: %v", err)
	}

	m := FromAny(raw).(Map)
	if m["count"] != Scalar("3") {
		t.Errorf("integer should carry as its textual form, got %v", m["count"])
	}
	if m["ratio"] != Scalar("0.5") {
		t.Errorf("float should carry as its textual form, got %v", m["ratio"])
	}
	if m["name"] != Scalar("x") {
		t.Errorf("string mismatch: %v", m["name"])
	}
}

func TestFromAny_ToAny_RoundTrip(t *testing.T) {
	src := map[string]any{
		"list":   []any{"a", "b"},
		"nested": map[string]any{"k": "v"},
		"plain":  "s",
	}
	got := ToAny(FromAny(src))
	if !reflect.DeepEqual(got, src) {
		t.Errorf("round trip mismatch:\n got %#v\nwant %#v", got, src)
	}
}

func TestMap_MarshalsAsPlainJSON(t *testing.T) {
	doc := Map{"global": Map{"white_list": Sequence{Scalar("127.0.0.1")}}}
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"global":{"white_list":["127.0.0.1"]}}`
	if string(raw) != want {
		t.Errorf("marshal mismatch:\n got %s\nwant %s", raw, want)
	}
}
