package steps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/huectl/huectl/internal/backup"
	"github.com/huectl/huectl/internal/execx"
	"github.com/huectl/huectl/internal/fetch"
	"github.com/huectl/huectl/internal/sysinfo"
)

// extension is one GNOME Shell extension the theme depends on.
type extension struct {
	UUID string
	Name string
}

var themeExtensions = []extension{
	{"logomenu@aryan_k", "Logo Menu"},
	{"appindicatorsupport@rgcjonas.gmail.com", "AppIndicator Support"},
	{"user-theme@gnome-shell-extensions.gcampax.github.com", "User Themes"},
	{"gsconnect@andyholmes.github.io", "GSConnect"},
	{"blur-my-shell@aunetx", "Blur My Shell"},
	{"hotedge@jonathan.jdoda.ca", "Hot Edge"},
	{"caffeine@patapon.info", "Caffeine"},
	{"add-to-steam@pupper.space", "Add to Steam"},
	{"restartto@tiagoporsch.github.io", "Restart To"},
	{"block-caribou-36@lxylxy123456.ercli.dev", "Block Caribou"},
	{"compiz-alike-magic-lamp-effect@hermes83.github.com", "Magic Lamp Effect"},
	{"burn-my-windows@schneegans.github.com", "Burn My Windows"},
}

// Extensions enabled alongside the downloaded set. These ship with the
// distro image and only need switching on.
var bundledExtensions = []string{
	"ding@rastersoft.com",
	"lockscreen-extension@pratap.fastmail.fm",
}

const systemExtensionsDir = "/usr/share/gnome-shell/extensions"

// extensionInfo is the extensions.gnome.org extension-info response.
type extensionInfo struct {
	PK              int                        `json:"pk"`
	ShellVersionMap map[string]shellVersionRef `json:"shell_version_map"`
}

type shellVersionRef struct {
	Version int `json:"version"`
}

// extensionsStep installs the theme's extension set from
// extensions.gnome.org and enables it.
type extensionsStep struct {
	meta
}

func newExtensionsStep(deps *Deps) Step {
	return &extensionsStep{meta{number: 11, name: "GNOME Extensions", deps: deps}}
}

func (s *extensionsStep) userExtDir() string {
	return s.deps.home(".local", "share", "gnome-shell", "extensions")
}

func (s *extensionsStep) IsInstalled(_ *sysinfo.Info) bool {
	count := 0
	for _, ext := range themeExtensions {
		if exists(filepath.Join(s.userExtDir(), ext.UUID)) ||
			exists(filepath.Join(systemExtensionsDir, ext.UUID)) {
			count++
		}
	}
	return count >= len(themeExtensions)/2
}

func (s *extensionsStep) Install(ctx context.Context, info *sysinfo.Info, bk *backup.Manager, dryRun bool) (Result, error) {
	if info.GnomeVersion == "" {
		return s.failed("GNOME not detected"), nil
	}

	if dryRun {
		names := make([]string, len(themeExtensions))
		for i, ext := range themeExtensions {
			names[i] = ext.Name
		}
		return s.success("would install: %s", strings.Join(names, ", ")), nil
	}

	bk.BackupConfigKey(ctx, "/org/gnome/shell/enabled-extensions")

	var installed, already, failed int
	for _, ext := range themeExtensions {
		switch s.installOne(ctx, ext, info) {
		case installStateInstalled:
			installed++
		case installStateAlready:
			already++
		default:
			s.deps.Logger.Warn().Str("extension", ext.Name).Msg("extension install failed")
			failed++
		}
	}

	if err := s.enableAll(ctx); err != nil {
		return Result{}, err
	}

	var parts []string
	if installed > 0 {
		parts = append(parts, fmt.Sprintf("%d installed", installed))
	}
	if already > 0 {
		parts = append(parts, fmt.Sprintf("%d already present", already))
	}
	if failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", failed))
		return s.failed("%s", strings.Join(parts, ", ")), nil
	}
	return s.success("%s", strings.Join(parts, ", ")), nil
}

type installState int

const (
	installStateFailed installState = iota
	installStateInstalled
	installStateAlready
)

func (s *extensionsStep) installOne(ctx context.Context, ext extension, info *sysinfo.Info) installState {
	if exists(filepath.Join(s.userExtDir(), ext.UUID)) ||
		exists(filepath.Join(systemExtensionsDir, ext.UUID)) {
		return installStateAlready
	}

	shellVer := fmt.Sprintf("%d", info.GnomeMajor())

	var extInfo extensionInfo
	infoURL := fmt.Sprintf("https://extensions.gnome.org/extension-info/?uuid=%s&shell_version=%s", ext.UUID, shellVer)
	if err := s.deps.Fetch.GetJSON(ctx, infoURL, &extInfo); err != nil {
		return installStateFailed
	}

	versionTag, ok := pickVersion(extInfo.ShellVersionMap, shellVer)
	if !ok || extInfo.PK == 0 {
		return installStateFailed
	}

	tmp, err := os.MkdirTemp("", "huectl-ext-*")
	if err != nil {
		return installStateFailed
	}
	defer os.RemoveAll(tmp)

	archive := filepath.Join(tmp, "ext.zip")
	dlURL := fmt.Sprintf("https://extensions.gnome.org/download-extension/%s.shell-extension.zip?version_tag=%d", ext.UUID, versionTag)
	if err := s.deps.Fetch.Download(ctx, dlURL, archive); err != nil {
		return installStateFailed
	}

	if execx.Ok(ctx, s.deps.Exec, "gnome-extensions", "install", "--force", archive) {
		return installStateInstalled
	}

	// No gnome-extensions tool; unpack into the user directory directly.
	dest := filepath.Join(s.userExtDir(), ext.UUID)
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return installStateFailed
	}
	if err := fetch.ExtractZipTree(archive, dest); err != nil {
		return installStateFailed
	}
	return installStateInstalled
}

// pickVersion chooses the best release for the running shell: an exact
// major match, then the "all" entry, then whatever is available.
func pickVersion(versions map[string]shellVersionRef, shellVer string) (int, bool) {
	if ref, ok := versions[shellVer]; ok {
		return ref.Version, true
	}
	if ref, ok := versions["all"]; ok {
		return ref.Version, true
	}
	for _, ref := range versions {
		return ref.Version, true
	}
	return 0, false
}

func (s *extensionsStep) enableAll(ctx context.Context) error {
	uuids := make([]string, 0, len(themeExtensions)+len(bundledExtensions))
	for _, ext := range themeExtensions {
		uuids = append(uuids, ext.UUID)
	}
	uuids = append(uuids, bundledExtensions...)

	quoted := make([]string, len(uuids))
	for i, u := range uuids {
		quoted[i] = "'" + u + "'"
	}
	arr := "[" + strings.Join(quoted, ", ") + "]"

	if err := s.deps.Dconf.Write(ctx, "/org/gnome/shell/enabled-extensions", arr); err != nil {
		return err
	}
	return s.deps.Dconf.Write(ctx, "/org/gnome/shell/disable-user-extensions", "false")
}
