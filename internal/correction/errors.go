package correction

import "fmt"

// ConfigurationError reports that the correction step cannot run at all. Err,
// when set, is the cause, such as a missing API key.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	switch {
	case e.Err == nil:
		return "correction is not configured: " + e.Reason
	case e.Reason == "":
		return fmt.Sprintf("correction is not configured: %v", e.Err)
	default:
		return fmt.Sprintf("correction is not configured: %s: %v", e.Reason, e.Err)
	}
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ProviderError wraps a failure of the correction provider or a proposal that
// breaks the correction contract.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("correction provider: %v", e.Err)
	}
	return fmt.Sprintf("correction provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
