// Package inbox delivers accepted contact submissions.
//
// A Sink stores or forwards one Submission. LogSink logs it, SQLiteSink
// inserts it into a local database and S3Sink writes it as a JSON object.
// MultiSink fans out to several sinks, and Dispatcher runs delivery on a
// bounded worker pool so that accepting a submission never waits on storage.
package inbox
