package core

import (
	"fmt"
	"testing"

	"github.com/huangsam/churnlens/core/agg"
	"github.com/huangsam/churnlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeRows builds n well-formed rows for the test pipeline with varied
// values so predictions are not all identical.
func makeRows(n int) []schema.RawRow {
	rows := make([]schema.RawRow, 0, n)
	contracts := []string{"Month-to-month", "One year", "Two year"}
	for i := range n {
		rows = append(rows, schema.RawRow{
			"Contract":       contracts[i%len(contracts)],
			"tenure":         fmt.Sprintf("%d", (i*7)%72),
			"MonthlyCharges": fmt.Sprintf("%d", 20+(i*13)%90),
		})
	}
	return rows
}

// TestRunPartialSuccess verifies a batch with one malformed row still
// returns complete results for the well-formed rows: 9 predictions, 1 row
// error, KPIs over the 9.
func TestRunPartialSuccess(t *testing.T) {
	pipe := testPipeline()
	rows := makeRows(10)
	delete(rows[4], "tenure") // break one row

	res, err := Run(rows, nil, pipe, DefaultParams())
	require.NoError(t, err)

	assert.Len(t, res.Predictions, 9)
	require.Len(t, res.RowErrors, 1)
	assert.Equal(t, 4, res.RowErrors[0].RowIndex)
	assert.Contains(t, res.RowErrors[0].Reason, "tenure")
	assert.Equal(t, 9, res.KPIs.TotalCustomers)
}

// TestRunLimitDoesNotBiasKPIs verifies the correctness invariant that the
// presentation limit caps the response but never the statistics.
func TestRunLimitDoesNotBiasKPIs(t *testing.T) {
	pipe := testPipeline()
	rows := makeRows(200)

	capped := DefaultParams()
	capped.Limit = 25
	uncapped := DefaultParams()
	uncapped.Limit = 200

	resCapped, err := Run(rows, nil, pipe, capped)
	require.NoError(t, err)
	resFull, err := Run(rows, nil, pipe, uncapped)
	require.NoError(t, err)

	assert.Len(t, resCapped.Predictions, 25)
	assert.Len(t, resFull.Predictions, 200)
	assert.Equal(t, resFull.KPIs, resCapped.KPIs)
	assert.Equal(t, resFull.GlobalImportance, resCapped.GlobalImportance)
}

// TestRunPreservesRowOrder verifies predictions come back in original row
// order after the parallel scoring pass.
func TestRunPreservesRowOrder(t *testing.T) {
	pipe := testPipeline()
	rows := makeRows(50)

	params := DefaultParams()
	params.Limit = 50
	params.Workers = 8

	res, err := Run(rows, nil, pipe, params)
	require.NoError(t, err)
	require.Len(t, res.Predictions, 50)
	for i, p := range res.Predictions {
		assert.Equal(t, i, p.RowIndex)
	}
}

// TestRunCustomerIDPassthrough verifies IDs are carried into predictions
// without being transformed or scored.
func TestRunCustomerIDPassthrough(t *testing.T) {
	pipe := testPipeline()
	rows := makeRows(3)
	ids := []string{"7590-VHVEG", "5575-GNVDE", "3668-QPYBK"}

	res, err := Run(rows, ids, pipe, DefaultParams())
	require.NoError(t, err)
	require.Len(t, res.Predictions, 3)
	for i, p := range res.Predictions {
		assert.Equal(t, ids[i], p.CustomerID)
	}
}

// TestRunEmptyDataset verifies zero valid rows is batch-fatal with
// EmptyDatasetError and no KPI object.
func TestRunEmptyDataset(t *testing.T) {
	pipe := testPipeline()

	t.Run("no rows at all", func(t *testing.T) {
		_, err := Run(nil, nil, pipe, DefaultParams())
		var emptyErr *agg.EmptyDatasetError
		require.ErrorAs(t, err, &emptyErr)
	})

	t.Run("all rows malformed", func(t *testing.T) {
		rows := []schema.RawRow{{"Contract": "One year"}, {"Contract": "Two year"}}
		_, err := Run(rows, nil, pipe, DefaultParams())
		var emptyErr *agg.EmptyDatasetError
		require.ErrorAs(t, err, &emptyErr)
	})
}

// TestRunConfigErrors verifies parameter violations abort the batch before
// any row is scored.
func TestRunConfigErrors(t *testing.T) {
	pipe := testPipeline()
	rows := makeRows(5)

	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{name: "threshold above one", mutate: func(p *Params) { p.Threshold = 1.5 }},
		{name: "threshold below zero", mutate: func(p *Params) { p.Threshold = -0.1 }},
		{name: "negative top_k", mutate: func(p *Params) { p.TopK = -1 }},
		{name: "zero limit", mutate: func(p *Params) { p.Limit = 0 }},
		{name: "inverted tier boundaries", mutate: func(p *Params) { p.Tiers = schema.TierBoundaries{LowMax: 0.8, HighMin: 0.2} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := DefaultParams()
			tt.mutate(&params)
			_, err := Run(rows, nil, pipe, params)
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
		})
	}
}

// TestRunSequentialAndParallelAgree verifies the worker pool is a pure
// throughput optimization with no semantic effect.
func TestRunSequentialAndParallelAgree(t *testing.T) {
	pipe := testPipeline()
	rows := makeRows(40)

	seq := DefaultParams()
	seq.Workers = 1
	seq.Limit = 40
	par := DefaultParams()
	par.Workers = 16
	par.Limit = 40

	resSeq, err := Run(rows, nil, pipe, seq)
	require.NoError(t, err)
	resPar, err := Run(rows, nil, pipe, par)
	require.NoError(t, err)

	assert.Equal(t, resSeq, resPar)
}

// TestRunTopDriversLength verifies each prediction carries at most
// min(TopK, N) drivers.
func TestRunTopDriversLength(t *testing.T) {
	pipe := testPipeline()
	rows := makeRows(4)

	params := DefaultParams()
	params.TopK = 2

	res, err := Run(rows, nil, pipe, params)
	require.NoError(t, err)
	for _, p := range res.Predictions {
		assert.Len(t, p.TopDrivers, 2)
	}
}
