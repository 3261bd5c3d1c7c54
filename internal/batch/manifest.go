package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one rendered scene in the output manifest.
type ManifestEntry struct {
	Name      string `json:"name"`
	Scene     string `json:"scene"`
	Image     string `json:"image"`
	Nodes     int    `json:"nodes"`
	Lines     int    `json:"lines"`
	Triangles int    `json:"triangles"`
}

// WriteManifest writes manifest.json for the successful results.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Name:      r.Name,
			Scene:     r.Path,
			Image:     r.Image,
			Nodes:     r.Nodes,
			Lines:     r.Lines,
			Triangles: r.Tris,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
