package config

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/huaijinli/wazuh/pkg/wzerrors"
)

func TestReadRCL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "system_audit_rcl.txt")
	writeTestFile(t, path, `# OSSEC Linux Audit
$php_ini=/etc/php.ini,/var/www/conf/php.ini;

[PHP - Register globals {CIS: 1.3 RHEL7} {PCI: 2.2.3}] [any] [https://example.com/php]
f:$php_ini -> r:^register_globals = On;

[SSH Hardening] [all] []
f:/etc/ssh/sshd_config -> !r:^# && r:Port\.+22;
f:/etc/ssh/sshd_config -> !r:^# && r:Protocol\.+1;
`)

	data, err := ReadRCL(path)
	if err != nil {
		t.Fatalf("read rcl: %v", err)
	}

	if data.Vars["php_ini"] != "/etc/php.ini,/var/www/conf/php.ini;" {
		t.Errorf("variable mismatch: %v", data.Vars)
	}
	if len(data.Controls) != 2 {
		t.Fatalf("expected 2 controls, got %d", len(data.Controls))
	}

	first := data.Controls[0]
	if first.Name != "PHP - Register globals" {
		t.Errorf("name mismatch: %q", first.Name)
	}
	if !reflect.DeepEqual(first.CIS, []string{"1.3 RHEL7"}) || !reflect.DeepEqual(first.PCI, []string{"2.2.3"}) {
		t.Errorf("reference groups mismatch: CIS=%v PCI=%v", first.CIS, first.PCI)
	}
	if first.Condition != "any" || first.Reference != "https://example.com/php" {
		t.Errorf("condition/reference mismatch: %q %q", first.Condition, first.Reference)
	}
	if len(first.Checks) != 1 {
		t.Errorf("first control checks mismatch: %v", first.Checks)
	}

	second := data.Controls[1]
	if second.Name != "SSH Hardening" || second.Condition != "all" || second.Reference != "" {
		t.Errorf("second control mismatch: %+v", second)
	}
	if len(second.Checks) != 2 {
		t.Errorf("second control checks mismatch: %v", second.Checks)
	}
}

func TestReadRCL_MissingFile(t *testing.T) {
	_, err := ReadRCL(filepath.Join(t.TempDir(), "nope.txt"))
	if !wzerrors.IsKind(err, wzerrors.KindResourceUnavailable) {
		t.Errorf("expected resource-unavailable, got %v", err)
	}
}

func TestReadRootkitFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rootkit_files.txt")
	writeTestFile(t, path, `# rootkit signatures
tmp/mcliZokhb           ! Bash door ::/rootkits/bashdoor.php
usr/lib/pt07            ! t0rn rootkit ::/rootkits/torn.php
not a signature line
`)

	sigs, err := ReadRootkitFiles(path)
	if err != nil {
		t.Fatalf("read rootkit files: %v", err)
	}
	want := []RootkitSignature{
		{Filename: "tmp/mcliZokhb", Name: "Bash door", Link: "/rootkits/bashdoor.php"},
		{Filename: "usr/lib/pt07", Name: "t0rn rootkit", Link: "/rootkits/torn.php"},
	}
	if !reflect.DeepEqual(sigs, want) {
		t.Errorf("signatures mismatch:\n got %+v\nwant %+v", sigs, want)
	}
}

func TestReadRootkitTrojans(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rootkit_trojans.txt")
	writeTestFile(t, path, `# trojan signatures
ls          !bash|^/bin/sh! Trojaned version of ls
ps          !/dev/ttyo!
`)

	sigs, err := ReadRootkitTrojans(path)
	if err != nil {
		t.Fatalf("read rootkit trojans: %v", err)
	}
	if len(sigs) != 2 {
		t.Fatalf("expected 2 signatures, got %+v", sigs)
	}
	if sigs[0].Name != "bash|^/bin/sh" || sigs[0].Description != "Trojaned version of ls" {
		t.Errorf("full signature mismatch: %+v", sigs[0])
	}
	if sigs[1].Filename != "ps" || sigs[1].Name != "/dev/ttyo" || sigs[1].Description != "" {
		t.Errorf("description-less signature mismatch: %+v", sigs[1])
	}
}

func TestReadCommandList(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ar.conf")
	writeTestFile(t, path, "restart-ossec0 - restart-ossec.sh - 0\nhost-deny600 - host-deny.sh - 600\n")

	lines, err := ReadCommandList(path)
	if err != nil {
		t.Fatalf("read command list: %v", err)
	}
	want := []string{"restart-ossec0 - restart-ossec.sh - 0", "host-deny600 - host-deny.sh - 600"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("lines mismatch:\n got %v\nwant %v", lines, want)
	}
}
