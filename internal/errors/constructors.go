package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *PipelineError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *PipelineError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Pipeline errors

func CompilerFailed(command string, cause error) *PipelineError {
	return Wrap(cause, CategoryCompiler, SeverityWarning, "compiler invocation failed").
		WithContext("command", command)
}

func TemplateRenderFailed(path string, cause error) *PipelineError {
	return Wrap(cause, CategoryTemplate, SeverityError, "template rendering failed").
		WithContext("path", path)
}

func DiscoveryFailed(root string, cause error) *PipelineError {
	return Wrap(cause, CategoryDiscovery, SeverityFatal, "asset discovery failed").
		WithContext("root", root)
}

func FileSystemError(operation string, cause error) *PipelineError {
	return Wrap(cause, CategoryFileSystem, SeverityError, "filesystem operation failed").
		WithContext("operation", operation)
}

// Internal errors

func InternalError(message string, cause error) *PipelineError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
