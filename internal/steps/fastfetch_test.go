package steps

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/huectl/huectl/internal/backup"
)

func TestFastfetchInstall(t *testing.T) {
	deps, _ := testDeps(t)
	writeAsset(t, deps, "fastfetch", "config.jsonc")
	writeAsset(t, deps, "fastfetch", "material-logo.txt")
	bashrc := deps.home(".bashrc")
	if err := os.WriteFile(bashrc, []byte("export PATH=$PATH\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	step := newFastfetchStep(deps)
	bk := testBackup(t, deps, backup.ModeWrite)

	res, err := step.Install(context.Background(), nil, bk, false)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != StatusSuccess {
		t.Fatalf("status = %s (%s)", res.Status, res.Message)
	}

	if !exists(deps.home(".config", "fastfetch", "config.jsonc")) {
		t.Error("config.jsonc not installed")
	}
	if !exists(deps.home(".config", "no-show-user-motd")) {
		t.Error("motd flag file not created")
	}

	data, err := os.ReadFile(bashrc)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(data), bashrcMarker) != 1 {
		t.Fatalf("bashrc greeting count = %d, want 1", strings.Count(string(data), bashrcMarker))
	}

	// A second install must not duplicate the greeting.
	if _, err := step.Install(context.Background(), nil, bk, false); err != nil {
		t.Fatal(err)
	}
	data, err = os.ReadFile(bashrc)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(data), bashrcMarker) != 1 {
		t.Fatalf("re-install duplicated the greeting, count = %d", strings.Count(string(data), bashrcMarker))
	}
}

func TestFastfetchDryRunMutatesNothing(t *testing.T) {
	deps, _ := testDeps(t)
	writeAsset(t, deps, "fastfetch", "config.jsonc")
	bashrc := deps.home(".bashrc")
	if err := os.WriteFile(bashrc, []byte("export PATH=$PATH\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	step := newFastfetchStep(deps)
	bk := testBackup(t, deps, backup.ModeDryRun)

	res, err := step.Install(context.Background(), nil, bk, true)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != StatusSuccess {
		t.Fatalf("status = %s", res.Status)
	}

	if exists(deps.home(".config", "fastfetch", "config.jsonc")) {
		t.Error("dry run installed the config")
	}
	if exists(deps.home(".config", "no-show-user-motd")) {
		t.Error("dry run created the motd flag")
	}
	data, err := os.ReadFile(bashrc)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "export PATH=$PATH\n" {
		t.Errorf("dry run modified .bashrc: %q", data)
	}
	if len(bk.Manifest().Files) != 0 {
		t.Error("dry run recorded backup entries")
	}
	if exists(bk.Dir()) {
		t.Error("dry run created the backup directory")
	}
}
