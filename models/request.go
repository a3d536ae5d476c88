package models

import (
	"slices"
	"time"
)

// Request represents a resumable upload session holding one or more files.
// Values are snapshots: update functions return a new Request and never
// modify the receiver.
type Request struct {
	ID         string           `dynamodbav:"request_id" json:"id"`         // Unique identifier for upload request
	Author     string           `dynamodbav:"author" json:"author"`         // Identity of the creator
	Created    time.Time        `dynamodbav:"created" json:"created"`       // Creation timestamp
	Modified   time.Time        `dynamodbav:"modified" json:"modified"`     // Last accepted write
	Processing bool             `dynamodbav:"processing" json:"processing"` // Claimed by a downstream consumer
	Files      []FileDefinition `dynamodbav:"files" json:"files"`           // Fixed at creation, indexed positionally
	Version    int64            `dynamodbav:"version" json:"version"`       // Bumped on every persisted update
}

// FileDefinition tracks the transfer state of one file of a Request.
type FileDefinition struct {
	ID                  string `dynamodbav:"id" json:"id"`                                     // Blob id in the storage engine
	Size                int64  `dynamodbav:"size" json:"size"`                                 // Declared payload size
	ChecksumSize        int64  `dynamodbav:"checksum_size" json:"checksumSize"`                // Declared checksum size
	Sent                int64  `dynamodbav:"sent" json:"sent"`                                 // Payload bytes accepted
	ChecksumSent        int64  `dynamodbav:"checksum_sent" json:"checksumSent"`                // Checksum bytes accepted
	Seq                 int64  `dynamodbav:"seq" json:"seq"`                                   // Accepted writes so far
	Closed              bool   `dynamodbav:"closed" json:"closed"`                             // Checksum accepted, no more writes
	SupportsRandomWrite bool   `dynamodbav:"supports_random_write" json:"supportsRandomWrite"` // Storage strategy selector
}

// FileSpec is what a caller declares for each file when creating a Request.
type FileSpec struct {
	Size         int64 `json:"size"`
	ChecksumSize int64 `json:"checksumSize"`
	RandomWrite  bool  `json:"randomWrite"`
}

// NewRequest builds a fresh Request; every file starts at seq 0, nothing sent.
func NewRequest(id, author string, fileIDs []string, files []FileSpec, now time.Time) Request {
	defs := make([]FileDefinition, len(files))
	for i, f := range files {
		defs[i] = FileDefinition{
			ID:                  fileIDs[i],
			Size:                f.Size,
			ChecksumSize:        f.ChecksumSize,
			SupportsRandomWrite: f.RandomWrite,
		}
	}

	return Request{
		ID:       id,
		Author:   author,
		Created:  now,
		Modified: now,
		Files:    defs,
	}
}

func (r Request) clone() Request {
	r.Files = slices.Clone(r.Files)
	return r
}

// HasFile reports whether fileIndex addresses a file of r.
func (r Request) HasFile(fileIndex int) bool {
	return fileIndex >= 0 && fileIndex < len(r.Files)
}

// IsReady reports whether every file has been closed.
func (r Request) IsReady() bool {
	for _, f := range r.Files {
		if !f.Closed {
			return false
		}
	}
	return true
}

// WithChunk records an accepted payload chunk of n bytes for fileIndex.
func (r Request) WithChunk(fileIndex int, n int64, now time.Time) Request {
	next := r.clone()
	f := &next.Files[fileIndex]
	f.Seq++
	f.Sent += n
	next.Modified = now
	return next
}

// WithCommittedFile records an accepted checksum of n bytes and closes fileIndex.
func (r Request) WithCommittedFile(fileIndex int, n int64, now time.Time) Request {
	next := r.clone()
	f := &next.Files[fileIndex]
	f.Seq++
	f.ChecksumSent = n
	f.Closed = true
	next.Modified = now
	return next
}

func (r Request) WithProcessing(now time.Time) Request {
	next := r.clone()
	next.Processing = true
	next.Modified = now
	return next
}

// TotalSize is the sum of declared payload and checksum sizes.
func (r Request) TotalSize() int64 {
	var total int64
	for _, f := range r.Files {
		total += f.Size + f.ChecksumSize
	}
	return total
}

// Progress returns the share of declared bytes already accepted, 0..100.
func (r Request) Progress() uint8 {
	total := r.TotalSize()
	if total == 0 {
		if r.IsReady() {
			return 100
		}
		return 0
	}

	var sent int64
	for _, f := range r.Files {
		sent += f.Sent + f.ChecksumSent
	}
	return uint8(sent * 100 / total)
}
