package core

type (
	// Logger is any service that can log messages.
	// args may hold errors, extra fields (map[string]interface{}) and at most one Person.
	Logger interface {
		Debug(msg string, args ...interface{})
		Info(msg string, args ...interface{})
		Warn(msg string, args ...interface{})
		Error(msg string, args ...interface{})
		Fatal(msg string, args ...interface{})
	}

	// Person identifies whose request or checklist a log entry is about.
	Person struct {
		ID string
	}
)
