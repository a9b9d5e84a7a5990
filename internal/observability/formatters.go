// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/haitham/binaa-planner/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintClassification outputs a human-readable summary of the classification.
func (p *Printer) PrintClassification(c *types.ProjectClassification) {
	if c == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Type:  %s\n", c.ProjectType))
	sb.WriteString(fmt.Sprintf("Tier:  %s\n", c.QualityTier))
	if c.SuggestedDesignPrompt != "" {
		sb.WriteString("\nDesign prompt:\n")
		sb.WriteString("  " + c.SuggestedDesignPrompt + "\n")
	}

	p.printBox("PROJECT CLASSIFICATION", sb.String())
}

// PrintBlueprintFindings outputs a summary of the blueprint analysis.
func (p *Printer) PrintBlueprintFindings(f *types.BlueprintFindings) {
	if f == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Area:        %s\n", f.Quantities.Area))
	sb.WriteString(fmt.Sprintf("Line length: %s\n", f.Quantities.TotalLineLength))

	if len(f.Warnings) > 0 {
		sb.WriteString("\nWarnings:\n")
		count := min(len(f.Warnings), maxItemsToShow)
		for i := 0; i < count; i++ {
			w := f.Warnings[i]
			sb.WriteString(fmt.Sprintf("  • [%s] %s\n", w.Severity, w.Description))
		}
		if len(f.Warnings) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(f.Warnings)-maxItemsToShow))
		}
	}

	if len(f.RequiredItems) > 0 {
		sb.WriteString("\nRequired items:\n")
		count := min(len(f.RequiredItems), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", f.RequiredItems[i].Item))
		}
		if len(f.RequiredItems) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(f.RequiredItems)-maxItemsToShow))
		}
	}

	p.printBox("BLUEPRINT ANALYSIS", sb.String())
}

// PrintEstimate outputs a summary of the cost estimate.
func (p *Printer) PrintEstimate(e *types.CostEstimate) {
	if e == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total:     %s\n", e.TotalCostLabel))
	sb.WriteString(fmt.Sprintf("BOQ lines: %d\n", len(e.BillOfQuantities)))
	sb.WriteString(fmt.Sprintf("Crew:      %d personnel\n", e.CrewRecommendation.TotalPersonnel))

	if len(e.FinancialRisks) > 0 {
		sb.WriteString("\nFinancial risks:\n")
		count := min(len(e.FinancialRisks), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", e.FinancialRisks[i].Risk))
		}
		if len(e.FinancialRisks) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(e.FinancialRisks)-maxItemsToShow))
		}
	}

	p.printBox("COST ESTIMATE", sb.String())
}

// PrintPlan outputs the full plan summary section by section.
func (p *Printer) PrintPlan(plan *types.ComprehensivePlan) {
	if plan == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Project:  %s\n", plan.ProjectName))
	sb.WriteString(fmt.Sprintf("Location: %s\n", plan.Location))
	p.printBox("COMPREHENSIVE PLAN", sb.String())

	p.PrintClassification(&plan.Classification)
	p.PrintBlueprintFindings(plan.BlueprintAnalysis)
	p.PrintEstimate(&plan.Estimate)
}
