package steps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/huectl/huectl/internal/backup"
	"github.com/huectl/huectl/internal/sysinfo"
)

const legacyStylesheetPref = `user_pref("toolkit.legacyUserProfileCustomizations.stylesheets", true);`

// firefoxStep installs the userChrome/userContent stylesheets into every
// Firefox profile, native and Flatpak, and switches on legacy stylesheet
// loading.
type firefoxStep struct {
	meta
}

func newFirefoxStep(deps *Deps) Step {
	return &firefoxStep{meta{number: 15, name: "Firefox Theme", deps: deps}}
}

func (s *firefoxStep) roots() []string {
	return []string{
		s.deps.home(".var", "app", "org.mozilla.firefox", "config", "mozilla", "firefox"),
		s.deps.home(".mozilla", "firefox"),
	}
}

func (s *firefoxStep) IsInstalled(_ *sysinfo.Info) bool {
	for _, root := range s.roots() {
		entries, err := os.ReadDir(root)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() && exists(filepath.Join(root, e.Name(), "chrome", "userChrome.css")) {
				return true
			}
		}
	}
	return false
}

func (s *firefoxStep) Install(_ context.Context, _ *sysinfo.Info, bk *backup.Manager, dryRun bool) (Result, error) {
	chromeSrc := s.deps.asset("firefox", "userChrome.css")
	contentSrc := s.deps.asset("firefox", "userContent.css")

	if !exists(chromeSrc) || !exists(contentSrc) {
		return s.failed("source firefox CSS not found"), nil
	}

	profiles := s.findProfiles()
	if len(profiles) == 0 {
		return s.skipped("no firefox profiles found"), nil
	}

	if dryRun {
		return s.success("would install to %d profile(s)", len(profiles)), nil
	}

	for _, profile := range profiles {
		chromeDir := filepath.Join(profile, "chrome")
		if err := os.MkdirAll(chromeDir, 0o755); err != nil {
			return Result{}, err
		}

		bk.BackupFile(filepath.Join(chromeDir, "userChrome.css"))
		bk.BackupFile(filepath.Join(chromeDir, "userContent.css"))

		if err := backup.CopyFile(chromeSrc, filepath.Join(chromeDir, "userChrome.css")); err != nil {
			return Result{}, err
		}
		if err := backup.CopyFile(contentSrc, filepath.Join(chromeDir, "userContent.css")); err != nil {
			return Result{}, err
		}

		userJS := filepath.Join(profile, "user.js")
		bk.BackupFile(userJS)
		if err := ensureLegacyStylesheetPref(userJS); err != nil {
			return Result{}, err
		}
	}

	return s.success("installed to %d profile(s)", len(profiles)), nil
}

// findProfiles locates profile directories under both install roots,
// preferring profiles.ini and falling back to *default* directories.
func (s *firefoxStep) findProfiles() []string {
	var profiles []string

	for _, root := range s.roots() {
		if !exists(root) {
			continue
		}
		ini := filepath.Join(root, "profiles.ini")
		if exists(ini) {
			profiles = append(profiles, profilesFromINI(ini, root)...)
			continue
		}
		entries, err := os.ReadDir(root)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() && strings.Contains(e.Name(), "default") {
				profiles = append(profiles, filepath.Join(root, e.Name()))
			}
		}
	}

	seen := make(map[string]struct{})
	var unique []string
	for _, p := range profiles {
		resolved, err := filepath.EvalSymlinks(p)
		if err != nil {
			resolved = p
		}
		if _, ok := seen[resolved]; ok {
			continue
		}
		seen[resolved] = struct{}{}
		unique = append(unique, p)
	}
	return unique
}

// profilesFromINI reads Profile* and Install* sections of profiles.ini.
func profilesFromINI(path, root string) []string {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("ini")
	if err := v.ReadInConfig(); err != nil {
		return nil
	}

	var profiles []string
	for section, raw := range v.AllSettings() {
		if !strings.HasPrefix(section, "profile") && !strings.HasPrefix(section, "install") {
			continue
		}
		fields, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		rel := fmt.Sprint(fields["path"])
		if rel == "" || rel == "<nil>" {
			continue
		}
		full := rel
		if fmt.Sprint(fields["isrelative"]) != "0" {
			full = filepath.Join(root, rel)
		}
		if exists(full) {
			profiles = append(profiles, full)
		}
	}
	return profiles
}

// ensureLegacyStylesheetPref appends the legacy stylesheet pref to
// user.js unless it is already set.
func ensureLegacyStylesheetPref(path string) error {
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if strings.Contains(string(existing), legacyStylesheetPref) {
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if len(existing) > 0 && !strings.HasSuffix(string(existing), "\n") {
		if _, err := f.WriteString("\n"); err != nil {
			return err
		}
	}
	_, err = f.WriteString("\n// Material You Orange - enable custom CSS\n" + legacyStylesheetPref + "\n")
	return err
}
