package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dockingdto "github.com/piyushjha0409/DockAI/pkg/types/docking"
)

func writeInputs(t *testing.T) (scorePath, structurePath string) {
	t.Helper()
	dir := t.TempDir()
	scorePath = filepath.Join(dir, "scores.txt")
	structurePath = filepath.Join(dir, "poses.pdbqt")
	require.NoError(t, os.WriteFile(scorePath, []byte("   1       -7.2\n   2       -6.8\n"), 0o600))
	require.NoError(t, os.WriteFile(structurePath, []byte(
		"MODEL 1\nATOM 1 C1 0.000 0.000 0.000\nATOM 2 O1 0.000 0.000 1.400\nENDMDL\n"+
			"MODEL 2\nATOM 1 C1 1.000 0.000 0.000\nATOM 2 N1 1.000 0.000 1.400\nENDMDL\n"), 0o600))
	return scorePath, structurePath
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCmdSummary(t *testing.T) {
	scores, structure := writeInputs(t)

	out, err := runCLI(t, "parse", "--scores", scores, "--structure", structure)
	require.NoError(t, err)
	assert.Contains(t, out, "models: 2")
	assert.Contains(t, out, "best binding affinity: -7.20 kcal/mol")
	assert.Contains(t, out, "model 1: affinity -7.20, 2 atoms, 1 bonds")
}

func TestParseCmdJSON(t *testing.T) {
	scores, structure := writeInputs(t)

	out, err := runCLI(t, "parse", "--scores", scores, "--structure", structure, "--output", "json")
	require.NoError(t, err)

	var dto dockingdto.ModelDataDTO
	require.NoError(t, json.Unmarshal([]byte(out), &dto))
	assert.Equal(t, 2, dto.Summary.ModelCount)
	assert.Equal(t, -7.2, dto.Summary.BestBindingAffinity)
}

func TestParseCmdEmptyDataset(t *testing.T) {
	dir := t.TempDir()
	scores := filepath.Join(dir, "scores.txt")
	structure := filepath.Join(dir, "poses.pdbqt")
	require.NoError(t, os.WriteFile(scores, []byte("nothing to see\n"), 0o600))
	require.NoError(t, os.WriteFile(structure, []byte("MODEL 1\nATOM 1 C1 0.000 0.000 0.000\nENDMDL\n"), 0o600))

	_, err := runCLI(t, "parse", "--scores", scores, "--structure", structure)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid poses")
}

func TestParseCmdRejectsBadOutputFormat(t *testing.T) {
	scores, structure := writeInputs(t)
	_, err := runCLI(t, "parse", "--scores", scores, "--structure", structure, "--output", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestParseCmdMissingFlags(t *testing.T) {
	_, err := runCLI(t, "parse")
	require.Error(t, err)
}
