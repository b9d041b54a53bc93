//go:build linux

package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoginItemWritesAndRemovesDesktopEntry(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configDir)

	item := LoginItem{Name: "Judgy Test", Exec: "/opt/my apps/judgy"}
	if item.Enabled() {
		t.Fatal("item enabled before Enable")
	}
	if err := item.Set(true); err != nil {
		t.Fatalf("Enable: %v", err)
	}

	path := filepath.Join(configDir, "autostart", "judgy-test.desktop")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read entry: %v", err)
	}
	entry := string(data)
	if !strings.Contains(entry, `Exec="/opt/my apps/judgy"`) || !strings.Contains(entry, "Name=Judgy Test") {
		t.Errorf("entry = %q", entry)
	}
	if !item.Enabled() {
		t.Error("item not enabled after Enable")
	}

	if err := item.Set(false); err != nil {
		t.Fatalf("Disable: %v", err)
	}
	if item.Enabled() {
		t.Error("item still enabled after Disable")
	}
	if err := item.Disable(); err != nil {
		t.Errorf("second Disable: %v", err)
	}
}

func TestLoginItemValidates(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if err := (LoginItem{Name: " ", Exec: "/bin/judgy"}).Enable(); err == nil {
		t.Error("blank name accepted")
	}
	if err := (LoginItem{Name: "judgy"}).Enable(); err == nil {
		t.Error("missing exec accepted")
	}
	if err := (LoginItem{Name: "judgy"}).Disable(); err != nil {
		t.Errorf("Disable without exec: %v", err)
	}
}

func TestConfigDirFollowsXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	got, err := ConfigDir()
	if err != nil || got != dir {
		t.Errorf("ConfigDir = %q, %v; want %q", got, err, dir)
	}
}
