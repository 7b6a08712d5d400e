package errors

import (
	"fmt"
	"net/http"
)

// NetworkError wraps a transport failure talking to the archive
func NetworkError(err error) *CheckError {
	return Wrap(ErrorTypeNetwork, err).
		WithSolutions(
			"Check your internet connection",
			"Retry later, the Wayback Machine may be rate limiting or down",
			"Raise archive.timeout in the config file for slow links",
		)
}

// HTTPStatusError reports a 4xx/5xx answer from the archive
func HTTPStatusError(code int) *CheckError {
	return New(ErrorTypeNetwork, fmt.Sprintf("HTTP %d: %s", code, http.StatusText(code))).
		WithCause("the archive API rejected the request")
}

// DecodeError wraps a JSON decoding failure of an archive response
func DecodeError(err error) *CheckError {
	e := New(ErrorTypeDecode, fmt.Sprintf("JSON decode error: %v", err))
	e.Err = err
	return e.WithCause("the archive answered with something other than JSON")
}

// ConfigError reports an invalid configuration value
func ConfigError(err error) *CheckError {
	return Wrap(ErrorTypeConfiguration, err).
		WithSolutions(
			"Check $HOME/.wbcheck/config.yaml or the file passed with --config",
			"Check WBCHECK_* environment variables",
		).
		WithHelp("wbcheck --help")
}

// InvalidDateError reports a --date value the archive cannot interpret
func InvalidDateError(date string) *CheckError {
	return New(ErrorTypeValidation, fmt.Sprintf("invalid date %q", date)).
		WithCause("dates must be YYYYMMDD or YYYYMMDDHHMMSS").
		WithSolutions("wbcheck example.com --date 20050101")
}

// OutputError wraps a failure writing the report file
func OutputError(path string, err error) *CheckError {
	e := New(ErrorTypeFileSystem, fmt.Sprintf("failed to write %s: %v", path, err))
	e.Err = err
	return e
}
