package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindRoot(t *testing.T) {
	// base/
	//   project/ (.pilha/)
	//     src/deep/
	//   plain/ (.pilha file, not a directory)
	baseDir := t.TempDir()
	projectDir := filepath.Join(baseDir, "project")
	deepDir := filepath.Join(projectDir, "src", "deep")
	plainDir := filepath.Join(baseDir, "plain")

	for _, dir := range []string{deepDir, plainDir, filepath.Join(projectDir, RootMarker)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(plainDir, RootMarker), []byte("not a dir"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		startPath string
		wantRoot  string
		wantErr   bool
	}{
		{"Start at Root", projectDir, projectDir, false},
		{"Start Nested Deeply", deepDir, projectDir, false},
		{"Marker Is A File", plainDir, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindRoot(tt.startPath)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FindRoot() error = %v, wantErr %v", err, tt.wantErr)
			}
			if filepath.Clean(got) != filepath.Clean(tt.wantRoot) && !tt.wantErr {
				t.Errorf("FindRoot() = %v, want %v", got, tt.wantRoot)
			}
		})
	}
}
