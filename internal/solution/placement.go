package solution

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ReferencesFolderName names the folder, directly under the root, that holds
// projects added by reference expansion.
const ReferencesFolderName = "_References"

// PlacementSegments returns the folder chain below _References for a
// project file. The project's directory is taken relative to rootPath and
// its last segment is dropped, since it normally repeats the project name:
// /repo/libs/core/core.proj under /repo yields [libs].
func PlacementSegments(rootPath, filePath string) ([]string, error) {
	rel, err := filepath.Rel(rootPath, filepath.Dir(filePath))
	if err != nil {
		return nil, fmt.Errorf("relative path of %q: %w", filePath, err)
	}
	segments := strings.Split(filepath.ToSlash(rel), "/")
	return segments[:len(segments)-1], nil
}

// placementFolder returns the folder a referenced project belongs in,
// creating _References and any intermediate folders on the way.
func (t *Tree) placementFolder(filePath string) *Folder {
	folder := t.root.getOrCreateSubfolder(ReferencesFolderName)
	segments, err := PlacementSegments(t.rootPath, filePath)
	if err != nil {
		t.logger.Warn("placing referenced project at references root", "file", filePath, "error", err)
		return folder
	}
	for _, name := range segments {
		folder = folder.getOrCreateSubfolder(name)
	}
	return folder
}
