package tools

import "runtime"

// builtinEntries is the curated tool set shipped with runtool. User registry
// files may add to or override these.
var builtinEntries = []ToolEntry{
	{Name: "theme.sh", Spec: InstallSpec{Kind: KindScript, User: "lemnos", Project: "theme.sh", Path: "bin/theme.sh"}},
	{Name: "neofetch", Spec: InstallSpec{Kind: KindScript, User: "dylanaraps", Project: "neofetch"}},
	{Name: "adb-sync", Spec: InstallSpec{Kind: KindScript, User: "google", Project: "adb-sync"}},
	{Name: "adb", Spec: InstallSpec{
		Kind:    KindPackage,
		URL:     "https://dl.google.com/android/repository/platform-tools-latest-" + runtime.GOOS + ".zip",
		Binary:  "adb",
		Package: "platform-tools",
	}},
	{Name: "repo", Spec: InstallSpec{Kind: KindURL, URL: "https://storage.googleapis.com/git-repo-downloads/repo"}},
	{Name: "shiv", Spec: InstallSpec{Kind: KindRelease, User: "linkedin", Project: "shiv"}},
	{Name: "pre-commit", Spec: InstallSpec{Kind: KindRelease, User: "pre-commit", Project: "pre-commit"}},
	{Name: "fzf", Spec: InstallSpec{Kind: KindRelease, User: "junegunn", Project: "fzf"}},
	{Name: "rg", Spec: InstallSpec{Kind: KindRelease, User: "BurntSushi", Project: "ripgrep", Binary: "rg"}},
	{Name: "docker-compose", Spec: InstallSpec{Kind: KindRelease, User: "docker", Project: "compose", Binary: "docker-compose"}},
	{Name: "gdu", Spec: InstallSpec{Kind: KindRelease, User: "dundee", Project: "gdu"}},
	{Name: "tldr", Spec: InstallSpec{Kind: KindRelease, User: "isacikgoz", Project: "tldr"}},
	{Name: "lazydocker", Spec: InstallSpec{Kind: KindRelease, User: "jesseduffield", Project: "lazydocker"}},
	{Name: "lazygit", Spec: InstallSpec{Kind: KindRelease, User: "jesseduffield", Project: "lazygit"}},
	{Name: "lazynpm", Spec: InstallSpec{Kind: KindRelease, User: "jesseduffield", Project: "lazynpm"}},
	{Name: "shellcheck", Spec: InstallSpec{Kind: KindRelease, User: "koalaman", Project: "shellcheck"}},
	{Name: "shfmt", Spec: InstallSpec{Kind: KindRelease, User: "mvdan", Project: "sh", Rename: "shfmt"}},
	{Name: "bat", Spec: InstallSpec{Kind: KindRelease, User: "sharkdp", Project: "bat"}},
	{Name: "fd", Spec: InstallSpec{Kind: KindRelease, User: "sharkdp", Project: "fd"}},
	{Name: "delta", Spec: InstallSpec{Kind: KindRelease, User: "dandavison", Project: "delta"}},
	{Name: "btop", Spec: InstallSpec{Kind: KindRelease, User: "aristocratos", Project: "btop"}},
	{Name: "deno", Spec: InstallSpec{Kind: KindRelease, User: "denoland", Project: "deno"}},
	{Name: "hadolint", Spec: InstallSpec{Kind: KindRelease, User: "hadolint", Project: "hadolint"}},
	{Name: "clang-format", Spec: InstallSpec{Kind: KindRelease, User: "llvm", Project: "llvm-project", Binary: "clang-format"}},
	{Name: "clang-tidy", Spec: InstallSpec{Kind: KindRelease, User: "llvm", Project: "llvm-project", Binary: "clang-tidy"}},
	{Name: "pyenv", Spec: InstallSpec{Kind: KindRepo, User: "pyenv", Project: "pyenv", Path: "libexec/pyenv"}},
	{Name: "nodenv", Spec: InstallSpec{Kind: KindRepo, User: "nodenv", Project: "nodenv", Path: "libexec/nodenv"}},
}

// BuiltinRegistry returns a registry containing only the curated tool set.
func BuiltinRegistry() *Registry {
	reg, err := NewRegistry(builtinEntries)
	if err != nil {
		// builtinEntries is a compile-time constant set with unique names.
		panic(err)
	}
	return reg
}
