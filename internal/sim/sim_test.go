package sim

import (
	"context"
	"io"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceruleanoak/hanafuda-sub004/engine"
	"github.com/ceruleanoak/hanafuda-sub004/internal/ledger"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestRunCompletes(t *testing.T) {
	for _, id := range []engine.VariantID{
		engine.VariantKoiKoi,
		engine.VariantSakura,
		engine.VariantHachiHachi,
		engine.VariantMatch,
	} {
		t.Run(string(id), func(t *testing.T) {
			opts := engine.DefaultMatchOptions(id)
			opts.TotalRounds = 3
			opts.Seed = 11

			r := &Runner{Opts: opts, Log: quietLogger()}
			res, err := r.Run(context.Background())
			require.NoError(t, err)

			assert.Len(t, res.Rounds, 3)
			assert.GreaterOrEqual(t, res.Winner, 0)
			assert.Less(t, res.Winner, len(res.Scores))
		})
	}
}

func TestRunDeterministic(t *testing.T) {
	opts := engine.DefaultMatchOptions(engine.VariantKoiKoi)
	opts.TotalRounds = 4
	opts.Seed = 99

	r := &Runner{Opts: opts, Log: quietLogger()}
	a, err := r.Run(context.Background())
	require.NoError(t, err)
	b, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a.Scores, b.Scores)
	assert.True(t, reflect.DeepEqual(a.Rounds, b.Rounds))
}

func TestRunWithLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")
	led, err := ledger.Open(path, quietLogger())
	require.NoError(t, err)
	defer led.Close()

	opts := engine.DefaultMatchOptions(engine.VariantKoiKoi)
	opts.TotalRounds = 2
	opts.Seed = 5

	r := &Runner{Opts: opts, Log: quietLogger(), Ledger: led}
	res, err := r.Run(context.Background())
	require.NoError(t, err)

	history, err := led.History(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, res.MatchID, history[0].ID)
	assert.Equal(t, res.Winner, history[0].Winner)
	assert.Equal(t, res.Scores, history[0].Scores)
}

func TestRunMany(t *testing.T) {
	opts := engine.DefaultMatchOptions(engine.VariantMatch)
	opts.TotalRounds = 1
	opts.Seed = 1

	r := &Runner{Opts: opts, Log: quietLogger()}
	wins, results, err := r.RunMany(context.Background(), 5)
	require.NoError(t, err)

	assert.Len(t, results, 5)
	total := 0
	for _, w := range wins {
		total += w
	}
	assert.Equal(t, 5, total)
}
