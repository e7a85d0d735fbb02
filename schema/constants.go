package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for evaluation storage.
	DatabaseBackend string

	// Classification is the outcome of an evaluation or indicator, and doubles as the cell color.
	Classification string

	// TooltipKind discriminates the tooltip payload of a data point.
	TooltipKind string

	// ExpandState is the pagination state of the heatmap rows.
	ExpandState string

	// Status represents how an indicator moved against its compared evaluations.
	Status string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All classifications supported.
const (
	PassResult    Classification = "pass"
	WarningResult Classification = "warning"
	FailResult    Classification = "fail"
	InfoResult    Classification = "info" // fallback when nothing else applies
)

// All tooltip kinds supported.
const (
	ScoreTooltipKind TooltipKind = "score"
	SLITooltipKind   TooltipKind = "sli"
)

// All expand states supported.
const (
	CollapsedState ExpandState = "collapsed" // default
	ExpandedState  ExpandState = "expanded"
)

// All comparison statuses supported.
const (
	ImprovedStatus  Status = "improved"
	RegressedStatus Status = "regressed"
	UnchangedStatus Status = "unchanged"
	MissingStatus   Status = "missing"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ScoreRow is the row label used for the evaluation score points.
const ScoreRow = "score"

// AllClassifications lists the classifications in legend order.
var AllClassifications = []Classification{PassResult, WarningResult, FailResult, InfoResult}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidClassifications lists all valid classifications.
var ValidClassifications = map[Classification]struct{}{
	PassResult:    {},
	WarningResult: {},
	FailResult:    {},
	InfoResult:    {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
