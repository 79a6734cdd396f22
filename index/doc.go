// Package index owns the native bleve indexes behind writer and searcher
// handles.
//
// # Writers
//
// [Create] always starts a fresh index at a path: an existing bleve index
// there is removed first. A directory that is not a bleve index is never
// deleted; Create fails with [ErrNotIndex] instead.
//
// [Writer.Add] buffers documents in a pending batch. [Writer.Flush] commits
// the batch, after which searchers of the same index see the documents. A
// batch commits on its own once it holds [Options.MaxBufferedDocs] documents.
// [Writer.Optimize] flushes and force-merges the index into one segment.
// [Writer.Close] flushes, drops the analyzers, then closes the index, in that
// order.
//
// # Readers
//
// [OpenReader] opens an existing index read-only. When the same process
// already has the index open (typically through a live writer) the reader
// shares that native index instead of opening a second one.
//
// # Sharing and Locking
//
// Native indexes are reference counted per absolute path. A writer cannot be
// created on a path whose index is open in this process ([ErrLocked]).
// Across processes bleve's own file lock applies; [Options.LockTimeout]
// bounds the wait so opening fails rather than hangs.
//
// # Thread Safety
//
// The registry is safe for concurrent use. A Writer is not: concurrent calls
// on one writer must be serialized by the caller. Readers may be shared.
package index
