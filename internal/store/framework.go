package store

// FrameworkSummary is a stored framework-based summary of one transcription.
type FrameworkSummary struct {
	Framework string `json:"framework"`
	Summary   string `json:"summary"`
}

const frameworkCollection = "framework_summaries"

// LoadFrameworkSummary reads the framework summary for a transcription,
// reporting whether one was stored.
func LoadFrameworkSummary(s Store, transcriptionID string) (*FrameworkSummary, bool, error) {
	var fs FrameworkSummary
	ok, err := s.Load(frameworkCollection, transcriptionID, &fs)
	if err != nil || !ok {
		return nil, false, err
	}
	return &fs, true, nil
}

// SaveFrameworkSummary stores the framework summary for a transcription.
func SaveFrameworkSummary(s Store, transcriptionID string, fs FrameworkSummary) error {
	return s.Save(frameworkCollection, transcriptionID, fs)
}

// DeleteFrameworkSummary removes a stored framework summary.
func DeleteFrameworkSummary(s Store, transcriptionID string) (bool, error) {
	return s.Delete(frameworkCollection, transcriptionID)
}
