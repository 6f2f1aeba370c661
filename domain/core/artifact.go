package core

import "time"

// ArtifactKind defines types of artifacts
type ArtifactKind string

const (
	ArtifactCleanTable ArtifactKind = "clean_table"
	ArtifactKPITable   ArtifactKind = "kpi_table"
	ArtifactPivotTable ArtifactKind = "pivot_table"
	ArtifactSummary    ArtifactKind = "summary"
	ArtifactFigure     ArtifactKind = "figure"
)

// Artifact represents one file written by a run
type Artifact struct {
	Kind      ArtifactKind `json:"kind"`
	Path      string       `json:"path"`
	Hash      Hash         `json:"hash"`
	CreatedAt time.Time    `json:"created_at"`
}

// Manifest lists the artifacts of a run in the order they were written
type Manifest struct {
	RunID     RunID      `json:"run_id"`
	Artifacts []Artifact `json:"artifacts"`
}

// NewManifest creates an empty manifest for a run
func NewManifest(runID RunID) *Manifest {
	return &Manifest{RunID: runID}
}

// Record hashes the file at path and appends it
func (m *Manifest) Record(kind ArtifactKind, path string) error {
	hash, err := HashFile(path)
	if err != nil {
		return err
	}
	m.Artifacts = append(m.Artifacts, Artifact{
		Kind:      kind,
		Path:      path,
		Hash:      hash,
		CreatedAt: time.Now(),
	})
	return nil
}

// Count returns the number of artifacts of the given kind
func (m *Manifest) Count(kind ArtifactKind) int {
	n := 0
	for _, a := range m.Artifacts {
		if a.Kind == kind {
			n++
		}
	}
	return n
}
