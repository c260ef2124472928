package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// expandPath expands $VAR references and a leading ~ in p. On Windows it
// also expands %VAR% and accepts ~\ as the home prefix.
func expandPath(p string) string {
	if p == "" {
		return ""
	}

	p = os.ExpandEnv(p)
	if runtime.GOOS == "windows" {
		p = expandPercentVars(p)
	}

	rest, ok := cutHomePrefix(p)
	if !ok {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if rest == "" {
		return home
	}
	return filepath.Join(home, rest)
}

// resolvePath expands p and anchors it at workDir when it is relative.
func resolvePath(p, workDir string) string {
	p = expandPath(p)
	if p == "" || filepath.IsAbs(p) || workDir == "" {
		return p
	}
	return filepath.Join(workDir, p)
}

// cutHomePrefix reports whether p starts with the home shorthand and returns
// the remainder after it.
func cutHomePrefix(p string) (string, bool) {
	if p == "~" {
		return "", true
	}
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		return rest, true
	}
	if runtime.GOOS == "windows" {
		if rest, ok := strings.CutPrefix(p, `~\`); ok {
			return rest, true
		}
	}
	return "", false
}

// expandPercentVars replaces %NAME% with the value of NAME. Unset names and
// a bare %% are left as written.
func expandPercentVars(p string) string {
	if !strings.Contains(p, "%") {
		return p
	}

	var b strings.Builder
	for {
		start := strings.IndexByte(p, '%')
		if start < 0 {
			b.WriteString(p)
			return b.String()
		}
		end := strings.IndexByte(p[start+1:], '%')
		if end < 0 {
			b.WriteString(p)
			return b.String()
		}
		end += start + 1

		name := p[start+1 : end]
		b.WriteString(p[:start])
		switch val, ok := os.LookupEnv(name); {
		case name == "":
			b.WriteByte('%')
			p = p[start+1:]
			continue
		case ok:
			b.WriteString(val)
		default:
			b.WriteString(p[start : end+1])
		}
		p = p[end+1:]
	}
}
