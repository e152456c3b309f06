package tools

// SpecKind selects the install strategy for a tool.
type SpecKind string

const (
	// KindURL downloads a single executable file.
	KindURL SpecKind = "url"
	// KindScript downloads a script from a GitHub repository tree.
	KindScript SpecKind = "script"
	// KindPackage downloads an archive and links an executable out of it.
	KindPackage SpecKind = "package"
	// KindRelease resolves a GitHub release asset for the current platform.
	KindRelease SpecKind = "release"
	// KindRepo clones a git repository and runs a script inside the clone.
	KindRepo SpecKind = "repo"
)

// InstallSpec describes how to obtain a tool. Which fields apply depends on
// Kind; Validate reports specs that are missing required fields.
type InstallSpec struct {
	Kind SpecKind `yaml:"kind" json:"kind"`

	// URL is the download location for url and package installs.
	URL string `yaml:"url,omitempty" json:"url,omitempty"`

	// User and Project identify a GitHub repository for script, release and
	// repo installs.
	User    string `yaml:"user,omitempty" json:"user,omitempty"`
	Project string `yaml:"project,omitempty" json:"project,omitempty"`

	// Path is the file within the repository tree (script) or within the
	// clone (repo).
	Path string `yaml:"path,omitempty" json:"path,omitempty"`

	// Tag pins a git ref or release tag. Defaults: master for script and
	// repo, the latest release for release.
	Tag string `yaml:"tag,omitempty" json:"tag,omitempty"`

	// Binary names the executable to pull out of a release or package when
	// it differs from the project name.
	Binary string `yaml:"binary,omitempty" json:"binary,omitempty"`

	// Package names the extraction directory for package installs.
	Package string `yaml:"package,omitempty" json:"package,omitempty"`

	// Rename overrides the final name in the bin directory.
	Rename string `yaml:"rename,omitempty" json:"rename,omitempty"`
}

// ToolEntry is one registry record: a unique name plus its install spec.
type ToolEntry struct {
	Name string      `yaml:"name" json:"name"`
	Spec InstallSpec `yaml:"spec" json:"spec"`
}

// ManifestEntry records a resolved tool path and how it was obtained.
type ManifestEntry struct {
	Tool        string   `json:"tool"`
	Kind        SpecKind `json:"kind"`
	Path        string   `json:"path"`
	SourceURL   string   `json:"source_url,omitempty"`
	Checksum    string   `json:"checksum,omitempty"`
	InstalledAt string   `json:"installed_at,omitempty"`
}

// Manifest wraps persisted entries for quick lookup.
type Manifest struct {
	Entries map[string]ManifestEntry `json:"entries"`
}
