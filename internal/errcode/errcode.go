package errcode

// Codes carried in export notifications and config error responses:
//   - 0: no error
//   - 4xxx: caller-fixable (bad document or format)
//   - 5xxx: system failure
const (
	OK                   = 0
	InvalidConfiguration = 4001
	InvalidDocument      = 4002
	UnknownTemplate      = 4003
	ResumeNotFound       = 4004
	SystemError          = 5000
)
