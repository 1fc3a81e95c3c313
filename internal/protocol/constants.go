package protocol

const (
	ToolNameReadFile        = "draftdesk.read_file"
	ToolNameListDir         = "draftdesk.list_dir"
	ToolNameSearchFiles     = "draftdesk.search_files"
	ToolNameSystemInfo      = "draftdesk.system_info"
	ToolNameAnalyzePatterns = "draftdesk.analyze_patterns"
	ToolNameDraftEmail      = "draftdesk.draft_email"
)

const (
	ErrorCodeInvalidField      = "INVALID_FIELD"
	ErrorCodeMissingField      = "MISSING_FIELD"
	ErrorCodeUnknownTool       = "UNKNOWN_TOOL"
	ErrorCodeFileNotFound      = "FILE_NOT_FOUND"
	ErrorCodePermissionDenied  = "PERMISSION_DENIED"
	ErrorCodeProviderAuth      = "MISTRAL_AUTH"
	ErrorCodeProviderRateLimit = "MISTRAL_RATE_LIMIT"
	ErrorCodeProviderFailed    = "MISTRAL_FAILED"
	ErrorCodeInternal          = "INTERNAL_ERROR"
)

const (
	DefaultListenAddr = "127.0.0.1:8311"

	ChatPath      = "/api/chat"
	ToolsListPath = "/api/tools"
	ToolsCallPath = "/api/tools/call"
	HealthPath    = "/healthz"
)
