package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Config errors (C100-C199)

	"C100": {
		Category:   CategoryConfig,
		Message:    "Failed to read config file",
		Detail:     "The config file exists but could not be read or parsed.",
		Suggestion: "Check the file's syntax, or run `contactd config init` to write a fresh one.",
	},
	"C101": {
		Category:   CategoryConfig,
		Message:    "Invalid listen address",
		Detail:     "server.addr must be host:port, for example \":8080\" or \"127.0.0.1:8080\".",
		Suggestion: "Set server.addr or CONTACT_SERVER_ADDR.",
	},
	"C102": {
		Category: CategoryConfig,
		Message:  "Invalid session limit",
		Detail:   "Session limits and timeouts must be positive.",
	},
	"C103": {
		Category:   CategoryConfig,
		Message:    "Unknown inbox sink",
		Detail:     "inbox.sinks may contain log, sqlite and s3.",
		Suggestion: "Remove the unknown entry from inbox.sinks.",
	},
	"C104": {
		Category:   CategoryConfig,
		Message:    "Missing S3 bucket",
		Detail:     "The s3 sink is enabled but inbox.s3.bucket is empty.",
		Suggestion: "Set inbox.s3.bucket or CONTACT_INBOX_S3_BUCKET.",
	},
	"C105": {
		Category:   CategoryConfig,
		Message:    "Missing SQLite path",
		Detail:     "The sqlite sink is enabled but inbox.sqlite.path is empty.",
		Suggestion: "Set inbox.sqlite.path, or \":memory:\" for a throwaway database.",
	},
	"C106": {
		Category: CategoryConfig,
		Message:  "Invalid log setting",
		Detail:   "log.level must be debug, info, warn or error; log.format must be text or json.",
	},
	"C107": {
		Category: CategoryConfig,
		Message:  "Invalid inbox queue",
		Detail:   "inbox.queue_size and inbox.workers must be positive.",
	},

	// Protocol errors (C200-C299)

	"C200": {
		Category: CategoryProtocol,
		Message:  "Invalid client frame",
		Detail:   "A WebSocket frame could not be decoded as an event.",
	},

	// Inbox errors (C300-C399)

	"C300": {
		Category:   CategoryInbox,
		Message:    "Failed to open inbox database",
		Suggestion: "Check that the directory of inbox.sqlite.path exists and is writable.",
	},
	"C301": {
		Category: CategoryInbox,
		Message:  "Failed to configure S3 sink",
	},
	"C302": {
		Category: CategoryInbox,
		Message:  "Submission delivery failed",
		Detail:   "One or more sinks rejected an accepted submission.",
	},

	// CLI errors (C400-C499)

	"C400": {
		Category: CategoryCLI,
		Message:  "Submission rejected",
		Detail:   "The payload did not pass validation.",
	},
	"C401": {
		Category: CategoryCLI,
		Message:  "Invalid payload",
		Detail:   "Input on stdin must be a JSON object with name, email and message.",
	},
	"C402": {
		Category:   CategoryCLI,
		Message:    "Config file already exists",
		Suggestion: "Pass --force to overwrite it.",
	},

	// Server errors (C500-C599)

	"C500": {
		Category:   CategoryServer,
		Message:    "Failed to start server",
		Suggestion: "Check that the listen address is free.",
	},
}

// GetAllCodes returns all registered error codes in sorted order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
