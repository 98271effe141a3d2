package common

import (
	"fmt"
	"regexp"
	"strings"
)

const maxNameLength = 255

// characters Unreal refuses in object and package names
const invalidNameChars = "\"' ,/.:|&!~\n\r\t@#(){}[]=;^%$`\\*?<>"

var mountPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateAssetPath normalizes a content path. Relative paths are placed
// under /Game. The first segment must be a mount point such as /Game,
// /Engine, /Script or a plugin mount.
func ValidateAssetPath(path string) (string, error) {
	p := strings.TrimSpace(strings.ReplaceAll(path, "\\", "/"))
	if p == "" {
		return "", fmt.Errorf("asset path is required")
	}
	if !strings.HasPrefix(p, "/") {
		p = "/Game/" + p
	}
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}

	segments := strings.Split(strings.TrimPrefix(p, "/"), "/")
	if len(segments) == 0 || !mountPattern.MatchString(segments[0]) {
		return "", fmt.Errorf("invalid asset path %q: must start with a mount point such as /Game", path)
	}
	for _, seg := range segments {
		if seg == ".." || seg == "." {
			return "", fmt.Errorf("invalid asset path %q: relative segments are not allowed", path)
		}
		if strings.ContainsAny(seg, "\"'<>|?*:\n\r\t") {
			return "", fmt.Errorf("invalid asset path %q: illegal character", path)
		}
	}
	return p, nil
}

// SplitAssetPath returns the folder and asset name of a normalized path
func SplitAssetPath(path string) (folder, name string) {
	i := strings.LastIndex(path, "/")
	if i <= 0 {
		return "/", strings.TrimPrefix(path, "/")
	}
	return path[:i], path[i+1:]
}

// ObjectPath turns /Game/Folder/Asset into /Game/Folder/Asset.Asset
func ObjectPath(assetPath string) string {
	_, name := SplitAssetPath(assetPath)
	if strings.Contains(name, ".") {
		return assetPath
	}
	return assetPath + "." + name
}

// ValidateName checks an asset or object name
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("invalid name: longer than %d characters", maxNameLength)
	}
	if i := strings.IndexAny(name, invalidNameChars); i >= 0 {
		return fmt.Errorf("invalid name %q: character %q is not allowed", name, name[i])
	}
	return nil
}

// ValidateLabel checks a display label such as an actor label. Labels may
// contain spaces and punctuation but not control characters.
func ValidateLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return fmt.Errorf("label is required")
	}
	if len(label) > maxNameLength {
		return fmt.Errorf("invalid label: longer than %d characters", maxNameLength)
	}
	if strings.ContainsAny(label, "\n\r\t\x00") {
		return fmt.Errorf("invalid label %q: control characters are not allowed", label)
	}
	return nil
}
