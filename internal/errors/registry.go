package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Usage Errors (E001-E019)
	// ============================================

	"E001": {
		Category: CategoryUsage,
		Message:  "Write issued while a flush is draining",
		Detail:   "The render loop wrote to a view buffer writer while its flush was handing content to the external sink. Writes and flushes on one writer must be serialized by the caller; this almost always means a handler kept rendering after issuing an asynchronous flush.",
		DocURL:   "https://rivulet.dev/docs/errors/E001",
	},
	"E002": {
		Category: CategoryUsage,
		Message:  "Flush already in progress",
		Detail:   "A second flush was issued on a writer whose previous flush has not completed. At most one drain may be in flight per writer.",
		DocURL:   "https://rivulet.dev/docs/errors/E002",
	},
	"E003": {
		Category: CategoryUsage,
		Message:  "Byte window out of range",
		Detail:   "The requested (offset, length) window does not fit inside the backing slice. Window bounds are validated when the chunk is constructed, not when it is drained.",
		DocURL:   "https://rivulet.dev/docs/errors/E003",
	},

	// ============================================
	// Render Errors (E020-E039)
	// ============================================

	"E020": {
		Category: CategoryRender,
		Message:  "Unknown node kind",
		Detail:   "The renderer encountered a VNode whose Kind is not one of the known node kinds. This usually means a VNode was constructed by hand with a zero or corrupted Kind field.",
		DocURL:   "https://rivulet.dev/docs/errors/E020",
	},
	"E021": {
		Category: CategoryRender,
		Message:  "Page has no body",
		Detail:   "PageData.Body is nil. A page must have a root node to render.",
		DocURL:   "https://rivulet.dev/docs/errors/E021",
	},

	// ============================================
	// Stream Errors (E040-E059)
	// ============================================

	"E040": {
		Category: CategoryStream,
		Message:  "WebSocket sink is closed",
		Detail:   "The WebSocket connection behind this sink has been closed. A closed sink cannot accept further flushes; create a new sink for a new connection.",
		DocURL:   "https://rivulet.dev/docs/errors/E040",
	},
	"E041": {
		Category: CategoryStream,
		Message:  "Export sink already committed",
		Detail:   "Close was called twice on an export sink, or content was written after Close. An export sink commits its object exactly once.",
		DocURL:   "https://rivulet.dev/docs/errors/E041",
	},

	// ============================================
	// Config Errors (E060-E079)
	// ============================================

	"E060": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "No rivulet.json was found in the current directory or any parent directory.",
		DocURL:   "https://rivulet.dev/docs/errors/E060",
	},
	"E061": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "rivulet.json exists but could not be parsed as JSON.",
		DocURL:   "https://rivulet.dev/docs/errors/E061",
	},
	"E062": {
		Category: CategoryConfig,
		Message:  "Invalid server address",
		Detail:   "The configured host/port does not form a usable listen address.",
		DocURL:   "https://rivulet.dev/docs/errors/E062",
	},
	"E063": {
		Category: CategoryConfig,
		Message:  "Export destination not configured",
		Detail:   "The export command needs a destination: an S3 bucket in rivulet.json or an output directory flag.",
		DocURL:   "https://rivulet.dev/docs/errors/E063",
	},

	// ============================================
	// CLI Errors (E080-E099)
	// ============================================

	"E080": {
		Category: CategoryCLI,
		Message:  "No pages registered",
		Detail:   "The server has no pages to serve or export. Register at least one page before starting.",
		DocURL:   "https://rivulet.dev/docs/errors/E080",
	},
}

// Lookup returns the template registered for code, if any.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
