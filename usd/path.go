package usd

import (
	"path"
	"slices"
	"strings"
)

// ScenePath is the text between the '<' and '>' of a path literal. It
// addresses a prim, a property, or a file.
type ScenePath string

// FileExtensions lists the extensions that make a path name a file rather
// than a prim.
var FileExtensions = []string{
	"usd", "usda", "usdc", "usdz",
	"png", "jpg", "jpeg", "exr", "hdr", "tif", "tiff", "tga", "bmp",
}

// String renders the path with its delimiters.
func (p ScenePath) String() string { return "<" + string(p) + ">" }

// IsRoot reports whether p is the pseudo-root "/".
func (p ScenePath) IsRoot() bool { return p == "/" }

// IsAbsolute reports whether p starts at the root.
func (p ScenePath) IsAbsolute() bool { return strings.HasPrefix(string(p), "/") }

// Segments returns the '/'-separated components, without the root.
func (p ScenePath) Segments() []string {
	s := strings.TrimPrefix(string(p), "/")
	if s == "" {
		return nil
	}
	return strings.Split(s, "/")
}

// Name returns the last segment.
func (p ScenePath) Name() string {
	segs := p.Segments()
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

// IsFile reports whether the last segment names a file with a recognized
// extension, such as "c.usda" or "albedo.png".
func (p ScenePath) IsFile() bool {
	ext := strings.TrimPrefix(path.Ext(p.Name()), ".")
	return ext != "" && slices.Contains(FileExtensions, strings.ToLower(ext))
}

// IsProperty reports whether the last segment addresses a property, as in
// "/Mat/Shader.outputs:surface".
func (p ScenePath) IsProperty() bool {
	name := p.Name()
	if name == "." || name == ".." {
		return false
	}
	return strings.Contains(name, ".") && !p.IsFile()
}

// Property splits a property path into its prim path and property name.
func (p ScenePath) Property() (prim ScenePath, property string, ok bool) {
	if !p.IsProperty() {
		return p, "", false
	}
	i := strings.LastIndexByte(string(p), '.')
	return p[:i], string(p[i+1:]), true
}
