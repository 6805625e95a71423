package report

import "context"

// PDFRenderer renders report views to PDF documents
type PDFRenderer interface {
	RenderTrialBalance(ctx context.Context, tb *TrialBalanceResponse) ([]byte, error)
	RenderBalanceSheet(ctx context.Context, bs *BalanceSheetResponse) ([]byte, error)
	RenderProjectBalanceSheet(ctx context.Context, bs *ProjectBalanceSheetResponse) ([]byte, error)
}

// SpreadsheetWriter writes report views to XLSX workbooks
type SpreadsheetWriter interface {
	WriteTrialBalance(tb *TrialBalanceResponse) ([]byte, error)
}

// Archiver keeps a copy of generated report files
type Archiver interface {
	// Archive stores data under key and returns the stored location
	Archive(ctx context.Context, key, contentType string, data []byte) (string, error)
}
