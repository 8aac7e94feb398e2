//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedChurnlensPath holds the path to a shared churnlens binary built once for all tests.
	sharedChurnlensPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// modelFixture is a small but complete pipeline artifact used across tests.
const modelFixture = `{
	"model_version": "churn-lr-test",
	"trained_at": "2026-01-15T00:00:00Z",
	"rules": [
		{"column": "Contract", "kind": "categorical", "categories": ["Month-to-month", "One year", "Two year"]},
		{"column": "tenure", "kind": "numeric", "offset": 32, "scale": 24},
		{"column": "MonthlyCharges", "kind": "numeric", "offset": 65, "scale": 30}
	],
	"feature_names": ["Contract=Month-to-month", "Contract=One year", "Contract=Two year", "tenure", "MonthlyCharges"],
	"weights": [0.8, -0.1, -0.9, -0.5, 0.3],
	"bias": 0.1
}`

// datasetFixture holds a handful of customers covering all contract types.
const datasetFixture = `customerID,Contract,tenure,MonthlyCharges,Churn
7590-VHVEG,Month-to-month,1,29.85,No
5575-GNVDE,One year,34,56.95,No
3668-QPYBK,Month-to-month,2,53.85,Yes
7795-CFOCW,Two year,45,42.30,No
9237-HQITU,Month-to-month,8,99.65,Yes
`

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getChurnlensBinary returns the path to the churnlens binary, building it once if needed.
func getChurnlensBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "churnlens-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		churnlensPath := filepath.Join(tempDir, "churnlens")
		buildCmd := exec.Command("go", "build", "-o", churnlensPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build churnlens: %v", err))
		}

		sharedChurnlensPath = churnlensPath
	})

	return sharedChurnlensPath
}

// runChurnlensCommand runs the shared binary from the project root, logging output on failure.
func runChurnlensCommand(t *testing.T, args ...string) error {
	churnlensPath := getChurnlensBinary()
	cmd := exec.Command(churnlensPath, args...)
	cmd.Dir = "../" // Run from project root
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}

// writeFixtures writes the model artifact and dataset into dir and returns their paths.
func writeFixtures(t *testing.T, dir string) (modelPath, dataPath string) {
	t.Helper()
	modelPath = filepath.Join(dir, "model.json")
	if err := os.WriteFile(modelPath, []byte(modelFixture), 0o644); err != nil {
		t.Fatalf("failed to write model fixture: %v", err)
	}
	dataPath = filepath.Join(dir, "customers.csv")
	if err := os.WriteFile(dataPath, []byte(datasetFixture), 0o644); err != nil {
		t.Fatalf("failed to write dataset fixture: %v", err)
	}
	return modelPath, dataPath
}
