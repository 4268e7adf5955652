package steps

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/huectl/huectl/internal/backup"
	"github.com/huectl/huectl/internal/execx"
	"github.com/huectl/huectl/internal/fetch"
	"github.com/huectl/huectl/internal/sysinfo"
)

// Release artifacts for the three theme fonts.
const (
	interURL     = "https://github.com/rsms/inter/releases/download/v4.1/Inter-4.1.zip"
	firaCodeURL  = "https://github.com/tonsky/FiraCode/releases/download/6.2/Fira_Code_v6.2.zip"
	notoSerifURL = "https://github.com/notofonts/notofonts.github.io/raw/main/fonts/NotoSerif/googlefonts/variable-ttf/NotoSerif%5Bwdth%2Cwght%5D.ttf"
)

// fontsStep downloads and installs Inter, Fira Code and Noto Serif into
// the user font directory, then refreshes the fontconfig cache.
type fontsStep struct {
	meta
}

func newFontsStep(deps *Deps) Step {
	return &fontsStep{meta{number: 8, name: "Fonts (Inter, Fira Code, Noto Serif)", deps: deps}}
}

func (s *fontsStep) fontsDir() string {
	return s.deps.home(".local", "share", "fonts")
}

func (s *fontsStep) IsInstalled(_ *sysinfo.Info) bool {
	return s.fontInstalled("Inter")
}

func (s *fontsStep) Install(ctx context.Context, _ *sysinfo.Info, _ *backup.Manager, dryRun bool) (Result, error) {
	if dryRun {
		return s.success("would download and install fonts"), nil
	}

	if err := os.MkdirAll(s.fontsDir(), 0o755); err != nil {
		return Result{}, err
	}

	var failed []string
	install := func(name string, fn func(context.Context) error) {
		if s.fontInstalled(strings.ReplaceAll(name, " ", "")) {
			return
		}
		if err := fn(ctx); err != nil {
			s.deps.Logger.Warn().Err(err).Str("font", name).Msg("font install failed")
			failed = append(failed, name)
		}
	}

	install("Inter", s.installInter)
	install("Fira Code", s.installFiraCode)
	install("Noto Serif", s.installNotoSerif)

	s.deps.Exec.Exec(ctx, "fc-cache", "-f")

	if len(failed) > 0 {
		return s.failed("failed: %s", strings.Join(failed, ", ")), nil
	}
	return s.success("all fonts installed"), nil
}

// fontInstalled reports whether font files with the given prefix exist
// in the user font directory, falling back to fc-list for system fonts.
func (s *fontsStep) fontInstalled(prefix string) bool {
	entries, err := os.ReadDir(s.fontsDir())
	if err == nil {
		for _, e := range entries {
			ext := filepath.Ext(e.Name())
			if strings.HasPrefix(e.Name(), prefix) && (ext == ".ttf" || ext == ".otf") {
				return true
			}
		}
	}
	out := execx.Output(context.Background(), s.deps.Exec, "fc-list", ":family")
	return strings.Contains(strings.ToLower(out), strings.ToLower(prefix))
}

func (s *fontsStep) installInter(ctx context.Context) error {
	return s.installZip(ctx, interURL, "inter.zip", func(name string) bool {
		return strings.HasSuffix(name, ".ttf") && strings.Contains(name, "InterVariable")
	})
}

func (s *fontsStep) installFiraCode(ctx context.Context) error {
	return s.installZip(ctx, firaCodeURL, "firacode.zip", func(name string) bool {
		return strings.HasSuffix(name, ".ttf") && strings.Contains(name, "/ttf/")
	})
}

func (s *fontsStep) installNotoSerif(ctx context.Context) error {
	return s.deps.Fetch.Download(ctx, notoSerifURL, filepath.Join(s.fontsDir(), "NotoSerif-Variable.ttf"))
}

func (s *fontsStep) installZip(ctx context.Context, url, archiveName string, filter func(string) bool) error {
	tmp, err := os.MkdirTemp("", "huectl-fonts-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmp)

	archive := filepath.Join(tmp, archiveName)
	if err := s.deps.Fetch.Download(ctx, url, archive); err != nil {
		return err
	}
	_, err = fetch.ExtractZip(archive, s.fontsDir(), filter)
	return err
}
