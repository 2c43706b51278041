// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/mariana/cct-importer/internal/importer"
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

// PrintImportResult outputs a human-readable summary of a finished run.
func (p *Printer) PrintImportResult(fileName string, result *importer.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder

	status := "✅ CONCLUÍDO"
	if !result.Success {
		status = "⚠ FALHOU"
	}

	name := fileName
	if len(name) > 40 {
		name = name[:37] + "..."
	}
	sb.WriteString(fmt.Sprintf("Arquivo:  %s\n", name))
	sb.WriteString(fmt.Sprintf("Status:   %s\n", status))
	if result.Message != "" {
		msg := result.Message
		if len(msg) > 45 {
			msg = msg[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("Mensagem: %s\n", msg))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Registros processados: %d\n", result.Processed))
	if result.BlocksFailed > 0 {
		sb.WriteString(fmt.Sprintf("Blocos descartados:    %d\n", result.BlocksFailed))
	}
	sb.WriteString("\n")

	c := result.Counts
	sb.WriteString(fmt.Sprintf("Convênios:        %d\n", c.Convenios))
	sb.WriteString(fmt.Sprintf("Pisos salariais:  %d\n", c.Pisos))
	sb.WriteString(fmt.Sprintf("Valores de hora:  %d\n", c.ValoresHora))
	sb.WriteString(fmt.Sprintf("Particularidades: %d\n", c.Particularidades))
	sb.WriteString(fmt.Sprintf("Benefícios:       %d\n", c.Beneficios))
	sb.WriteString(fmt.Sprintf("Licenças:         %d", c.Licencas))

	p.printBox("RESULTADO DA IMPORTAÇÃO", sb.String())
}

// PrintRuns outputs a compact listing of recent import runs.
func (p *Printer) PrintRuns(runs []RunSummary) {
	if len(runs) == 0 {
		p.printBox("IMPORTAÇÕES RECENTES", "Nenhuma importação registrada.")
		return
	}

	var sb strings.Builder
	count := min(len(runs), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := runs[i]
		name := r.Arquivo
		if len(name) > 30 {
			name = name[:27] + "..."
		}
		sb.WriteString(fmt.Sprintf("%s\n", name))
		sb.WriteString(fmt.Sprintf("  %s · %d registros", r.Status, r.Registros))
		if i < count-1 {
			sb.WriteString("\n\n")
		}
	}
	if len(runs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n\n... e mais %d importações", len(runs)-maxItemsToShow))
	}

	p.printBox("IMPORTAÇÕES RECENTES", sb.String())
}

// RunSummary is the slice of an import run the listing cares about.
type RunSummary struct {
	Arquivo   string
	Status    string
	Registros int
}
