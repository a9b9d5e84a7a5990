package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/haitham/binaa-planner/internal/types"
)

func TestPrintClassification(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintClassification(&types.ProjectClassification{
		ProjectType:           types.TypeVilla,
		QualityTier:           types.TierLuxury,
		SuggestedDesignPrompt: "Modern villa with glass facade",
	})
	output := buf.String()

	assert.Contains(t, output, "PROJECT CLASSIFICATION")
	assert.Contains(t, output, "residential_villa")
	assert.Contains(t, output, "luxury")
}

func TestPrintClassification_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintClassification(nil)
	assert.Empty(t, buf.String())
}

func TestPrintEstimate_TruncatesRisks(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	est := &types.CostEstimate{TotalCostLabel: "1,250,000 SAR"}
	for i := 0; i < 8; i++ {
		est.FinancialRisks = append(est.FinancialRisks, types.FinancialRisk{Risk: "cost overrun"})
	}

	p.PrintEstimate(est)
	output := buf.String()

	assert.Contains(t, output, "COST ESTIMATE")
	assert.Contains(t, output, "1,250,000 SAR")
	assert.Contains(t, output, "... and 3 more")
}

func TestPrintPlan(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintPlan(&types.ComprehensivePlan{
		ProjectName: "Villa Narjis",
		Location:    "Riyadh, KSA",
		Classification: types.ProjectClassification{
			ProjectType: types.TypeVilla,
			QualityTier: types.TierLuxury,
		},
		Estimate: types.CostEstimate{TotalCostLabel: "1,250,000 SAR"},
	})
	output := buf.String()

	assert.Contains(t, output, "COMPREHENSIVE PLAN")
	assert.Contains(t, output, "Villa Narjis")
	// No blueprint section when the plan has no analysis.
	assert.NotContains(t, output, "BLUEPRINT ANALYSIS")
}
