package database

import "fmt"

// OpError wraps a storage failure with the operation and resource it hit.
type OpError struct {
	Op       string
	Resource string
	ID       int64
	Err      error
}

func (e *OpError) Error() string {
	if e == nil {
		return ""
	}
	if e.ID > 0 {
		return fmt.Sprintf("%s %s %d: %v", e.Op, e.Resource, e.ID, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Resource, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func wrapSettingErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Resource: "setting", Err: err}
}

func wrapChecklistErr(op string, stepID int64, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Resource: "checklist", ID: stepID, Err: err}
}

func wrapTimerErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Resource: "active timer", Err: err}
}

func wrapStateErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Resource: "daily state", Err: err}
}

func wrapPrefsErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Resource: "reminder prefs", Err: err}
}
