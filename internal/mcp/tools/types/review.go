package types

type HistoricalPatch struct {
	PRNumber int    `json:"pr_number"`
	Author   string `json:"author"`
	Patch    string `json:"patch"`
}

type HistoricalPatchesResult struct {
	Filename string            `json:"filename"`
	Matches  []HistoricalPatch `json:"matches"`
}

type PromptPreview struct {
	PRNumber      int      `json:"pr_number"`
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	FilesReviewed []string `json:"files_reviewed"`
	FilesSkipped  []string `json:"files_skipped"`
	// Prompt is empty when nothing was left to review after filtering.
	Prompt          string `json:"prompt"`
	NothingToReview bool   `json:"nothing_to_review"`
}
