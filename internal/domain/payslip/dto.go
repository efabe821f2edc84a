package payslip

// PayslipFile is a rendered payslip ready for download.
type PayslipFile struct {
	RecordID    string `json:"record_id"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	ArchivePath string `json:"archive_path,omitempty"`
	URL         string `json:"url,omitempty"`
	Content     []byte `json:"-"`
	// Diagnostics lists sections that could not be produced.
	Diagnostics []string `json:"diagnostics,omitempty"`
}
