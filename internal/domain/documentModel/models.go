package documentModel

type DocumentKind string

const (
	KindPDF         DocumentKind = "pdf"
	KindImage       DocumentKind = "image"
	KindUnsupported DocumentKind = "unsupported"
)

type InputFile struct {
	Name      string
	MediaType string
	Size      int64
	Content   []byte
}

type SimilarDocument struct {
	UploadId string  `json:"uploadId"`
	ClaimId  string  `json:"claimId,omitempty"`
	Filename string  `json:"filename"`
	Score    float32 `json:"score"`
}

type ExtractionOutcome struct {
	Filename string
	Text     string
	Summary  string
	Source   DocumentKind
	Similar  []SimilarDocument
}

type BlockType string

const (
	BlockTypePage BlockType = "PAGE"
	BlockTypeLine BlockType = "LINE"
	BlockTypeWord BlockType = "WORD"
)

// Block is one detected text element. Text is empty for non-text blocks.
type Block struct {
	BlockType BlockType
	Text      string
}

type JobStatus string

const (
	JobInProgress     JobStatus = "IN_PROGRESS"
	JobSucceeded      JobStatus = "SUCCEEDED"
	JobFailed         JobStatus = "FAILED"
	JobPartialSuccess JobStatus = "PARTIAL_SUCCESS"
)

// JobPage is one status poll or result page of an async detection job.
type JobPage struct {
	Status        JobStatus
	StatusMessage string
	Blocks        []Block
	NextToken     string
}

type AsyncJobHandle struct {
	JobId     string
	ObjectKey string
}
