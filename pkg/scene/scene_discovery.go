package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, also accepted by Resolve
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to the JSON file (file type only)
	Ellipsoids  int    `json:"ellipsoids"`
	Triangles   int    `json:"triangles"`
}

// ListBuiltinScenes describes every builtin scene
func ListBuiltinScenes() []SceneInfo {
	var scenes []SceneInfo
	for _, name := range BuiltinNames() {
		desc := builtins[name].build()
		scenes = append(scenes, SceneInfo{
			ID:          name,
			DisplayName: titleCase(name),
			Description: builtins[name].summary,
			Type:        "builtin",
			Ellipsoids:  len(desc.Ellipses),
			Triangles:   len(desc.Triangles),
		})
	}
	return scenes
}

// ListSceneFiles scans dir for *.json scene descriptions. A missing
// directory yields an empty list; unreadable files are reported in errs and
// skipped.
func ListSceneFiles(dir string) (scenes []SceneInfo, errs []error) {
	scenes = []SceneInfo{}
	if _, err := os.Stat(dir); err != nil {
		return scenes, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return scenes, []error{fmt.Errorf("failed to scan scenes directory: %w", err)}
	}

	for _, filePath := range files {
		info, err := ParseSceneMetadata(filePath)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, errs
}

// ParseSceneMetadata reads the name and description fields of a scene file,
// falling back to the file name
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	desc, err := ReadDescription(filePath)
	if err != nil {
		return SceneInfo{}, err
	}

	info := SceneInfo{
		ID:          filePath,
		DisplayName: titleCase(nameWithoutExt),
		Description: desc.Description,
		Type:        "file",
		FilePath:    filePath,
		Ellipsoids:  len(desc.Ellipses),
		Triangles:   len(desc.Triangles),
	}
	if desc.Name != "" {
		info.DisplayName = desc.Name
	}
	return info, nil
}

// Resolve builds a scene from a builtin name or a path to a JSON file
func Resolve(nameOrPath string) (*Scene, error) {
	if _, ok := builtins[nameOrPath]; ok {
		return Builtin(nameOrPath)
	}
	if strings.HasSuffix(nameOrPath, ".json") {
		return LoadFile(nameOrPath)
	}
	return nil, fmt.Errorf("%w: %q (builtin scenes: %s)", ErrUnknownScene, nameOrPath, strings.Join(BuiltinNames(), ", "))
}

// titleCase converts a filename-style string to title case
// e.g., "single-sphere" -> "Single Sphere"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
