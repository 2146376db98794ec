package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *BlogError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(path string, cause error) *BlogError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration file invalid").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *BlogError {
	return New(CategoryValidation, SeverityFatal, "validation failed: "+reason).
		WithContext("field", field).
		WithContext("reason", reason)
}

// Filesystem errors

func ReadFailed(path string, cause error) *BlogError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "read failed").
		WithContext("path", path)
}

func WriteFailed(path string, cause error) *BlogError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "write failed").
		WithContext("path", path)
}

func WalkFailed(path string, cause error) *BlogError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "directory walk failed").
		WithContext("path", path)
}

// SymlinkCycle reports a directory that links back to one of its ancestors.
func SymlinkCycle(path, ancestor string, cause error) *BlogError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "directory cycle detected").
		WithContext("path", path).
		WithContext("ancestor", ancestor)
}

// Generation errors

// PathCollision reports two entities that would be written to the same output file.
func PathCollision(output, first, second string, cause error) *BlogError {
	return Wrap(cause, CategoryBuild, SeverityFatal, "output path collision between "+first+" and "+second).
		WithContext("path", output).
		WithContext("first", first).
		WithContext("second", second)
}

func MarkdownFailed(path string, cause error) *BlogError {
	return Wrap(cause, CategoryMarkdown, SeverityFatal, "markdown rendering failed").
		WithContext("path", path)
}

func TemplateFailed(entity, template string, cause error) *BlogError {
	return Wrap(cause, CategoryTemplate, SeverityFatal, "template rendering failed").
		WithContext("entity", entity).
		WithContext("template", template)
}

func BuildFailed(stage string, cause error) *BlogError {
	return Wrap(cause, CategoryBuild, SeverityFatal, "build failed").
		WithContext("stage", stage)
}

// Git errors

func GitCommandFailed(args []string, cause error) *BlogError {
	return Wrap(cause, CategoryGit, SeverityFatal, "git command failed").
		WithContext("args", args)
}

// BranchMismatch reports a working tree that is not on the expected branch.
func BranchMismatch(expected, actual string) *BlogError {
	return New(CategoryGit, SeverityFatal, "working tree is on branch "+actual+", expected "+expected).
		WithContext("branch", expected).
		WithContext("head", actual)
}

// Internal errors

func InternalError(message string, cause error) *BlogError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
