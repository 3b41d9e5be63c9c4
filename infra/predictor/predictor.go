// Package predictor shells out to the Prophet forecasting script. The
// series goes in as CSV on stdin and the forecast comes back as JSON
// on stdout. The subprocess is killed when it outlives its deadline.
package predictor

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"time"

	"github.com/stockfolio/server/pkg/config"
	"github.com/stockfolio/server/pkg/domain"
	"github.com/stockfolio/server/pkg/domain/stock"
)

// ProphetPredictor runs the forecasting script as a subprocess.
type ProphetPredictor struct {
	python  string
	script  string
	timeout time.Duration
	horizon int
	logger  *slog.Logger
}

// New creates a ProphetPredictor from config.
func New(cfg *config.Predictor, logger *slog.Logger) *ProphetPredictor {
	return &ProphetPredictor{
		python:  cfg.Python,
		script:  cfg.Script,
		timeout: cfg.Timeout,
		horizon: cfg.Horizon,
		logger:  logger,
	}
}

// rawPoint matches the script's output rows. Dates arrive as strings
// in whatever layout pandas emits.
type rawPoint struct {
	Ds        string  `json:"ds"`
	Yhat      float64 `json:"yhat"`
	YhatLower float64 `json:"yhat_lower"`
	YhatUpper float64 `json:"yhat_upper"`
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("predictor: unparseable date %q", s)
}

// Predict forecasts the close series. The input must be ordered by
// timestamp ascending and non-empty.
func (p *ProphetPredictor) Predict(ctx context.Context, series []*stock.Candle) ([]stock.PredictionPoint, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("predictor: empty series: %w", domain.ErrValidation)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var in bytes.Buffer
	w := csv.NewWriter(&in)
	if err := w.Write([]string{"ds", "y"}); err != nil {
		return nil, err
	}
	for _, c := range series {
		row := []string{
			c.Timestamp.Format("2006-01-02"),
			strconv.FormatFloat(c.Close, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, p.python, p.script, "--periods", strconv.Itoa(p.horizon))
	cmd.Stdin = &in
	var out, errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut

	start := time.Now()
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			p.logger.Error("Predictor timed out", "timeout", p.timeout)
			return nil, fmt.Errorf("predictor: %w", ctx.Err())
		}
		p.logger.Error("Predictor failed", "error", err, "stderr", errOut.String())
		return nil, fmt.Errorf("predictor: %w: %s", err, errOut.String())
	}

	var raw []rawPoint
	if err := json.Unmarshal(out.Bytes(), &raw); err != nil {
		return nil, fmt.Errorf("predictor: bad output: %w", err)
	}
	points := make([]stock.PredictionPoint, 0, len(raw))
	for _, r := range raw {
		d, err := parseDate(r.Ds)
		if err != nil {
			return nil, err
		}
		points = append(points, stock.PredictionPoint{
			Date:  d,
			Yhat:  r.Yhat,
			Lower: r.YhatLower,
			Upper: r.YhatUpper,
		})
	}
	p.logger.Info("Forecast produced",
		"observations", len(series),
		"points", len(points),
		"elapsed", time.Since(start),
	)
	return points, nil
}
