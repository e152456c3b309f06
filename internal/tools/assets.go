package tools

import (
	"sort"
	"strings"
)

// assetIgnoreTokens lists filename fragments that disqualify a release asset:
// non-binary artefacts plus every OS and CPU marker. The markers valid for
// the target platform are removed before matching.
var assetIgnoreTokens = []string{
	// invalid file types
	".txt", "license", ".md", ".sha256", ".sha256sum", "checksums",
	"sha256sums", ".asc", ".sig", "src",

	// distro packages
	".deb", ".rpm",

	// operating systems
	"darwin", "macos", "linux", "windows", "freebsd", "netbsd", "openbsd",

	// cpu architectures
	"x86_64", "32-bit", "amd64", "x86", "i386", "386",
	"armv6hf", "aarch64", "arm64", "armhf", "armv5", "armv5l",
	"armv6", "armv6l", "armv7", "armv7l",
	"mips", "mips64", "mips64le", "mipsle", "ppc64", "ppc64le",
	"s390x", "i686", "powerpc", "i486",

	// extensions
	".exe",
}

func platformTokens(goos, goarch string) []string {
	var valid []string
	switch goos {
	case "darwin":
		valid = append(valid, "darwin", "apple", "macos")
	case "linux":
		valid = append(valid, "linux", ".deb", ".rpm")
	case "windows":
		valid = append(valid, "windows", ".exe")
	}
	switch goarch {
	case "amd64":
		valid = append(valid, "x86_64", "amd64", "x86")
	case "arm64":
		valid = append(valid, "arm64", "aarch64")
	case "arm":
		valid = append(valid, "armv7", "armv6")
	}
	return valid
}

// ignoreTokensFor returns the disqualifying fragments for a platform.
func ignoreTokensFor(goos, goarch string) []string {
	valid := map[string]bool{}
	for _, token := range platformTokens(goos, goarch) {
		valid[token] = true
	}

	tokens := make([]string, 0, len(assetIgnoreTokens))
	for _, token := range assetIgnoreTokens {
		if !valid[token] {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// BestAsset picks the release asset most likely to be a runnable binary for
// the given platform: the longest asset name containing no disqualifying
// fragment. Longest first, because asset names that spell out OS and CPU are
// more specific than bare ones.
func BestAsset(names []string, goos, goarch string) (string, bool) {
	ignore := ignoreTokensFor(goos, goarch)

	sorted := append([]string(nil), names...)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	for _, name := range sorted {
		lower := strings.ToLower(name)
		disqualified := false
		for _, token := range ignore {
			if strings.Contains(lower, token) {
				disqualified = true
				break
			}
		}
		if !disqualified {
			return name, true
		}
	}
	return "", false
}

// archiveAsset reports whether an asset name looks like an archive rather
// than a bare executable.
func archiveAsset(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".zip") ||
		strings.Contains(lower, ".tar") ||
		strings.HasSuffix(lower, ".tgz") ||
		strings.HasSuffix(lower, ".tbz")
}
