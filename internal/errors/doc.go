// Package errors provides structured, actionable errors for contactd.
//
// Infrastructure failures (bad configuration, an unreachable inbox, a port
// already in use) are reported as a ContactError carrying a registered code,
// a plain-language explanation and, where possible, a hint on how to fix it.
// Form validation failures are not errors and never pass through here.
//
// # Error Codes
//
//   - C1xx: configuration
//   - C2xx: wire protocol
//   - C3xx: submission inbox
//   - C4xx: command line
//   - C5xx: server
//
// # Usage
//
//	err := errors.New("C104").WithKey("inbox.s3.bucket")
//	errors.PrintError(os.Stderr, err)
//	// ERROR C104: Missing S3 bucket
//	//
//	//   inbox.s3.bucket
//	//
//	//   The s3 sink is enabled but inbox.s3.bucket is empty.
//	//
//	//   Hint: Set inbox.s3.bucket or CONTACT_INBOX_S3_BUCKET.
package errors
