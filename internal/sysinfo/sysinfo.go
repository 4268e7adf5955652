// Package sysinfo probes the host for the facts install steps depend on.
package sysinfo

import (
	"bufio"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/huectl/huectl/internal/execx"
)

// Distro identifies the distribution family.
type Distro string

// Known distribution families.
const (
	DistroBazzite    Distro = "bazzite"
	DistroSilverblue Distro = "silverblue"
	DistroFedora     Distro = "fedora"
	DistroUbuntu     Distro = "ubuntu"
	DistroArch       Distro = "arch"
	DistroUnknown    Distro = "unknown"
)

// PkgManager identifies the available package manager.
type PkgManager string

// Known package managers.
const (
	PkgDNF      PkgManager = "dnf"
	PkgAPT      PkgManager = "apt"
	PkgPacman   PkgManager = "pacman"
	PkgRPMOSTre PkgManager = "rpm-ostree"
	PkgNone     PkgManager = "none"
)

// Info is a read-only snapshot of the host. The install core treats it
// as an opaque input.
type Info struct {
	Distro       Distro
	DistroName   string
	GnomeVersion string
	PkgManager   PkgManager
	Immutable    bool
	Wayland      bool
	HasFlatpak   bool
	Home         string
}

// Detect probes the local host.
func Detect(ctx context.Context, e execx.Executor) *Info {
	info := &Info{
		Distro:     DistroUnknown,
		PkgManager: PkgNone,
		Home:       homeDir(),
	}

	detectDistro(info)
	detectGnome(ctx, e, info)
	info.Wayland = os.Getenv("XDG_SESSION_TYPE") == "wayland"
	_, err := exec.LookPath("flatpak")
	info.HasFlatpak = err == nil

	return info
}

func detectDistro(info *Info) {
	var osRelease map[string]string
	for _, path := range []string{"/etc/os-release", "/usr/lib/os-release"} {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		osRelease = parseOSRelease(f)
		f.Close()
		break
	}
	classify(osRelease, info)
}

// parseOSRelease reads KEY=value pairs, stripping surrounding quotes.
func parseOSRelease(r io.Reader) map[string]string {
	fields := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		fields[key] = strings.Trim(value, `"`)
	}
	return fields
}

func classify(osRelease map[string]string, info *Info) {
	id := strings.ToLower(osRelease["ID"])
	pretty := osRelease["PRETTY_NAME"]
	variant := strings.ToLower(osRelease["VARIANT_ID"])
	if pretty == "" {
		pretty = "Unknown Linux"
	}
	info.DistroName = pretty

	switch {
	case strings.Contains(id, "bazzite") || strings.Contains(variant, "bazzite") || strings.Contains(strings.ToLower(pretty), "bazzite"):
		info.Distro = DistroBazzite
		info.Immutable = true
		info.PkgManager = PkgRPMOSTre
	case strings.Contains(variant, "silverblue") || strings.Contains(variant, "kinoite"):
		info.Distro = DistroSilverblue
		info.Immutable = true
		info.PkgManager = PkgRPMOSTre
	case strings.Contains(id, "fedora"):
		info.Distro = DistroFedora
		info.PkgManager = PkgDNF
	case strings.Contains(id, "ubuntu") || strings.Contains(id, "pop") || strings.Contains(id, "mint"):
		info.Distro = DistroUbuntu
		info.PkgManager = PkgAPT
	case strings.Contains(id, "arch") || strings.Contains(id, "manjaro") || strings.Contains(id, "endeavouros"):
		info.Distro = DistroArch
		info.PkgManager = PkgPacman
	default:
		info.Distro = DistroUnknown
		for _, candidate := range []struct {
			bin string
			mgr PkgManager
		}{{"dnf", PkgDNF}, {"apt", PkgAPT}, {"pacman", PkgPacman}} {
			if _, err := exec.LookPath(candidate.bin); err == nil {
				info.PkgManager = candidate.mgr
				break
			}
		}
	}
}

func detectGnome(ctx context.Context, e execx.Executor, info *Info) {
	// "GNOME Shell 49.1" -> "49.1"
	out := execx.Output(ctx, e, "gnome-shell", "--version")
	parts := strings.Fields(out)
	if len(parts) >= 3 {
		info.GnomeVersion = parts[len(parts)-1]
	}
}

// GnomeMajor returns the shell's major version, 0 when undetected.
func (i *Info) GnomeMajor() int {
	major, _, _ := strings.Cut(i.GnomeVersion, ".")
	n := 0
	for _, c := range major {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
