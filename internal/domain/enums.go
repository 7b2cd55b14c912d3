package domain

// Stage is one step of the three-stage drafting pipeline.
type Stage string

const (
	StagePlot   Stage = "plot"
	StageMedium Stage = "medium"
	StageLong   Stage = "long"
)

// ValidStages is the canonical set of accepted stage strings.
var ValidStages = map[string]bool{
	"plot": true, "medium": true, "long": true,
}

type ExportFormat string

const (
	FormatText     ExportFormat = "txt"
	FormatMarkdown ExportFormat = "md"
	FormatPDF      ExportFormat = "pdf"
)

// ValidExportFormats is the canonical set of accepted export format strings.
var ValidExportFormats = map[string]bool{
	"txt": true, "md": true, "pdf": true,
}
