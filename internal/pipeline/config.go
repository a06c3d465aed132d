package pipeline

// DefaultMaxBase64DecodeLength bounds how large a decoded base64 candidate
// is still worth inspecting. Applied when the configured value is missing or
// not positive.
const DefaultMaxBase64DecodeLength = 2048

// Config is the sanitization policy. It is created once by the caller,
// treated as read-only here, and shared safely across concurrent calls.
type Config struct {
	// AllowDataURIs leaves text data URIs in place instead of removing them.
	AllowDataURIs bool
	// MaxBase64DecodeLength is the largest decoded size (bytes) of a base64
	// span that is still decoded and inspected.
	MaxBase64DecodeLength int
	// CustomPatterns are literal strings deleted from the text wherever they
	// occur, matched case-insensitively and verbatim.
	CustomPatterns []string
}

// Default returns the policy used when no configuration is supplied.
func Default() Config {
	return Config{MaxBase64DecodeLength: DefaultMaxBase64DecodeLength}
}
