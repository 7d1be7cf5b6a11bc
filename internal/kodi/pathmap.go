package kodi

import "strings"

// PathMapping rewrites a Sonarr path prefix to the prefix a Kodi host sees.
type PathMapping struct {
	From string // prefix as Sonarr reports it
	To   string // prefix as the host mounts it
}

// mapPath applies the first matching mapping, then converts separators to
// the host platform's convention.
func mapPath(path string, maps []PathMapping, p Platform) string {
	out := path
	for _, m := range maps {
		if strings.Contains(path, m.From) {
			out = strings.Replace(path, m.From, m.To, 1)
			break
		}
	}
	return toPlatformPath(out, p)
}

func toPlatformPath(path string, p Platform) string {
	if p.IsPosix() {
		return strings.ReplaceAll(path, `\`, "/")
	}
	return strings.ReplaceAll(path, "/", `\`)
}

// separator returns the path separator for the host platform.
func separator(p Platform) string {
	if p.IsPosix() {
		return "/"
	}
	return `\`
}

// baseName returns the final path element using the host platform's
// separator, not the local OS's.
func baseName(path string, p Platform) string {
	sep := separator(p)
	trimmed := strings.TrimRight(path, sep)
	if i := strings.LastIndex(trimmed, sep); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// dirName returns everything before the final path element.
func dirName(path string, p Platform) string {
	sep := separator(p)
	trimmed := strings.TrimRight(path, sep)
	if i := strings.LastIndex(trimmed, sep); i > 0 {
		return trimmed[:i]
	}
	if strings.HasPrefix(trimmed, sep) {
		return sep
	}
	return ""
}

// ensureTrailingSep guarantees exactly one trailing separator; Kodi treats
// directory scans without one as file scans.
func ensureTrailingSep(path string, p Platform) string {
	sep := separator(p)
	return strings.TrimRight(path, sep) + sep
}
