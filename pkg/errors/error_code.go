package errors

// ErrorCode identifies a class of failure.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation and configuration errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInsufficientData     ErrorCode = 106
	ErrCodeMissingParameter     ErrorCode = 109
	ErrCodeIncompatibleVersion  ErrorCode = 110

	// Data and snapshot errors (200-299)
	ErrCodeDataNotFound         ErrorCode = 200
	ErrCodeSnapshotWriteFailed  ErrorCode = 210
	ErrCodeSnapshotReadFailed   ErrorCode = 211
	ErrCodeSnapshotDecodeFailed ErrorCode = 212
	ErrCodeReplayLoadFailed     ErrorCode = 220

	// Strategy errors (400-499)
	ErrCodeUnsupportedStrategy ErrorCode = 403
	ErrCodeDecisionFailed      ErrorCode = 410

	// Feed errors (700-799)
	ErrCodeFeedConnectFailed     ErrorCode = 710
	ErrCodeFeedReadFailed        ErrorCode = 711
	ErrCodeMarketDataParseFailed ErrorCode = 702

	// Callback errors (800-899)
	ErrCodeCallbackFailed ErrorCode = 800
)
