package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var fontExtensions = map[string]bool{
	".ttf":   true,
	".otf":   true,
	".woff":  true,
	".woff2": true,
}

// fontDirs lists the directories searched for "<name>.ttf", in order.
var fontDirs = func() []string {
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local/share/fonts"))
	}
	return append(dirs, "/usr/share/fonts")
}

// ResolveFont turns the command-line font argument into a file path. A name
// with a font extension is returned unchanged; anything else is looked up as
// "<name>.ttf" in the user and system font directories.
func ResolveFont(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &ConfigError{Msg: "font name must not be empty"}
	}
	if fontExtensions[strings.ToLower(filepath.Ext(name))] {
		return name, nil
	}

	file := name + ".ttf"
	for _, dir := range fontDirs() {
		path := filepath.Join(dir, file)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", &ConfigError{Msg: fmt.Sprintf("font %q not found", name)}
}
