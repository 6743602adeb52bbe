package app

type StatusKind string

const (
	StatusOK      StatusKind = "ok"
	StatusStale   StatusKind = "stale"
	StatusMissing StatusKind = "missing"
)

type ProgressReporter interface {
	Increment(label string)
	Done()
}

type Reporter interface {
	Info(message string)
	Warn(message string)
	Stage(name, content string)
	Tool(pluginID, toolName string)
	Status(kind StatusKind, id, archive string)
	StatusSummary(ok, stale, missing int)
	Packed(id, archive string)
	Skipped(id string)
	PackSummary(packed, skipped int, index string)
	Progress(label string, total int) ProgressReporter
}

type noopReporter struct{}

func (n noopReporter) Info(string)                           {}
func (n noopReporter) Warn(string)                           {}
func (n noopReporter) Stage(string, string)                  {}
func (n noopReporter) Tool(string, string)                   {}
func (n noopReporter) Status(StatusKind, string, string)     {}
func (n noopReporter) StatusSummary(int, int, int)           {}
func (n noopReporter) Packed(string, string)                 {}
func (n noopReporter) Skipped(string)                        {}
func (n noopReporter) PackSummary(int, int, string)          {}
func (n noopReporter) Progress(string, int) ProgressReporter { return noopProgress{} }

type noopProgress struct{}

func (n noopProgress) Increment(string) {}
func (n noopProgress) Done()            {}

func ensureReporter(reporter Reporter) Reporter {
	if reporter == nil {
		return noopReporter{}
	}
	return reporter
}
