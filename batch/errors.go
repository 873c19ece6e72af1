package batch

import "fmt"

// UsageError is returned when the harness is invoked incorrectly: executing
// with nothing registered, or attaching metadata without the required key
// column. It is always raised before any file is touched.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("batch usage error: %s", e.Msg)
}

// ConfigError reports a setup defect in the parameter taxonomy: a
// multi-valued parameter without registered return labels, or a label count
// that does not match the number of returned values. Although detected while
// processing a single file, it applies to every file, so it aborts the whole
// batch.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("batch configuration error: %s", e.Msg)
}

// TaskError wraps a failure from one file's task and names the file.
type TaskError struct {
	File string
	Err  error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task %s: %v", e.File, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}
