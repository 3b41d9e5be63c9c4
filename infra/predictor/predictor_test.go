package predictor

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stockfolio/server/pkg/config"
	"github.com/stockfolio/server/pkg/domain"
	"github.com/stockfolio/server/pkg/domain/stock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "predict.sh")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o755))
	return path
}

func newPredictor(t *testing.T, script string, timeout time.Duration) *ProphetPredictor {
	t.Helper()
	return New(&config.Predictor{
		Python:  "/bin/sh",
		Script:  script,
		Timeout: timeout,
		Horizon: 30,
	}, slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

func sampleSeries() []*stock.Candle {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	out := make([]*stock.Candle, 0, 5)
	for i := 0; i < 5; i++ {
		out = append(out, &stock.Candle{
			Symbol:    "AAPL",
			Timestamp: base.AddDate(0, 0, i),
			Open:      100, High: 110, Low: 95,
			Close:  100 + float64(i),
			Volume: 1000,
		})
	}
	return out
}

func TestPredict_ParsesScriptOutput(t *testing.T) {
	script := writeScript(t, `#!/bin/sh
cat > /dev/null
echo '[{"ds":"2024-02-01","yhat":105.5,"yhat_lower":100.1,"yhat_upper":110.9}]'
`)
	p := newPredictor(t, script, 5*time.Second)

	points, err := p.Predict(context.Background(), sampleSeries())
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 105.5, points[0].Yhat)
	assert.Equal(t, 100.1, points[0].Lower)
	assert.Equal(t, 110.9, points[0].Upper)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), points[0].Date)
}

func TestPredict_EmptySeries(t *testing.T) {
	p := newPredictor(t, "unused.sh", time.Second)
	_, err := p.Predict(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPredict_ScriptFailure(t *testing.T) {
	script := writeScript(t, `#!/bin/sh
cat > /dev/null
echo "boom" >&2
exit 1
`)
	p := newPredictor(t, script, 5*time.Second)
	_, err := p.Predict(context.Background(), sampleSeries())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestPredict_Timeout(t *testing.T) {
	script := writeScript(t, `#!/bin/sh
sleep 10
`)
	p := newPredictor(t, script, 200*time.Millisecond)
	_, err := p.Predict(context.Background(), sampleSeries())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
