package models

// RequestReadyEvent is published once every file of a Request has been closed.
type RequestReadyEvent struct {
	RequestId string `json:"request_id"`
	Author    string `json:"author"`
}

// RequestFinalizedEvent is sent by a downstream consumer after it has moved the
// listed files to permanent storage; the remaining blobs are discarded.
type RequestFinalizedEvent struct {
	RequestId  string `json:"request_id"`
	MovedFiles []int  `json:"moved_files"`
}
