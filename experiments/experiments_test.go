package experiments

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"pazaak/experiments/metrics"
)

func TestRunExperiment(t *testing.T) {
	root := t.TempDir()
	configs := []metrics.AgentConfig{
		{ID: 1, Goroutines: 2, Simulations: 5, OpponentPolicy: "random"},
		{ID: 2, Goroutines: 1, Simulations: 5, Temperature: 0.5},
		{ID: 0, Random: true},
	}
	matchUps := [][]metrics.AgentConfig{{configs[0], configs[2]}, {configs[1], configs[2]}}
	err := runExperiment(root, "smoke", 1, configs, matchUps)
	require.NoError(t, err)

	runs, err := os.ReadDir(filepath.Join(root, "smoke"))
	require.NoError(t, err)
	require.Len(t, runs, 1)
	for _, file := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv"} {
		_, err := os.Stat(filepath.Join(root, "smoke", runs[0].Name(), file))
		require.NoError(t, err)
	}
}
