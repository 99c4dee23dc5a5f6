package config

import (
	"reflect"
	"testing"
)

func TestInsertOption_SkipsEmpty(t *testing.T) {
	c := testConverter()
	dst := Map{}
	c.insertOption(dst, "global", "logall", Scalar(""))
	c.insertOption(dst, "syscheck", "directories", Sequence{})
	if len(dst) != 0 {
		t.Errorf("empty values must not be inserted: %v", dst)
	}
}

func TestInsertOption_ListOptionWrapsFirstValue(t *testing.T) {
	c := testConverter()
	dst := Map{}
	c.insertOption(dst, "syscheck", "ignore", Scalar("/etc/mtab"))
	if !reflect.DeepEqual(dst["ignore"], Sequence{Scalar("/etc/mtab")}) {
		t.Errorf("first list option value should wrap as a singleton, got %v", dst["ignore"])
	}
	c.insertOption(dst, "syscheck", "ignore", Scalar("/etc/hosts.deny"))
	want := Sequence{Scalar("/etc/mtab"), Scalar("/etc/hosts.deny")}
	if !reflect.DeepEqual(dst["ignore"], want) {
		t.Errorf("repeated list option values should append, got %v", dst["ignore"])
	}
}

func TestInsertOption_ScalarOverwrites(t *testing.T) {
	c := testConverter()
	dst := Map{}
	c.insertOption(dst, "syscheck", "frequency", Scalar("43200"))
	c.insertOption(dst, "syscheck", "frequency", Scalar("86400"))
	if dst["frequency"] != Scalar("86400") {
		t.Errorf("repeated scalar should overwrite, got %v", dst["frequency"])
	}
}

func TestInsertSection_DuplicateAppends(t *testing.T) {
	c := testConverter()
	dst := Map{}
	c.insertSection(dst, "localfile", Map{"location": Scalar("/a")})
	c.insertSection(dst, "localfile", Map{"location": Scalar("/b")})

	want := Sequence{Map{"location": Scalar("/a")}, Map{"location": Scalar("/b")}}
	if !reflect.DeepEqual(dst["localfile"], want) {
		t.Errorf("duplicate sections should accumulate:\n got %v\nwant %v", dst["localfile"], want)
	}
}

func TestInsertSection_MergeFoldsOptions(t *testing.T) {
	c := testConverter()
	dst := Map{}
	c.insertSection(dst, "syscheck", Map{
		"frequency": Scalar("43200"),
		"ignore":    Sequence{Scalar("/etc/mtab")},
	})
	c.insertSection(dst, "syscheck", Map{
		"frequency": Scalar("86400"),
		"ignore":    Sequence{Scalar("/etc/random-seed")},
	})

	got := dst["syscheck"].(Map)
	if got["frequency"] != Scalar("86400") {
		t.Errorf("non-list option should overwrite, got %v", got["frequency"])
	}
	want := Sequence{Scalar("/etc/mtab"), Scalar("/etc/random-seed")}
	if !reflect.DeepEqual(got["ignore"], want) {
		t.Errorf("list option should concatenate, got %v", got["ignore"])
	}
}

func TestInsertSection_LastKeepsFinal(t *testing.T) {
	c := testConverter()
	dst := Map{}
	c.insertSection(dst, "cluster", Map{"node_name": Scalar("old")})
	c.insertSection(dst, "cluster", Map{"node_name": Scalar("new")})

	if !reflect.DeepEqual(dst["cluster"], Map{"node_name": Scalar("new")}) {
		t.Errorf("last section should win, got %v", dst["cluster"])
	}
}
