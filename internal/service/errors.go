package service

import (
	"errors"
	"fmt"
)

// Ingestion failures. Every error returned by the import pipeline matches exactly
// one of these with errors.Is.
var (
	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileRead        = errors.New("file read failed")
	ErrMissingSheet    = errors.New("missing sheet")
	ErrNoDataRows      = errors.New("no data rows")
	ErrNoMatchingRows  = errors.New("no matching rows")
)

// User-facing messages.
const (
	MsgInvalidFileType = "Excelファイル（.xlsx または .xls）を選択してください"
	MsgFileRead        = "ファイルの読み込みに失敗しました"
	MsgMissingSheet    = "「特訓リスト」シートが見つかりません。シート名を確認してください。"
	MsgNoData          = "データが見つかりません。ファイルの内容を確認してください。"
	MsgNoDataRows      = "データ行が見つかりません。"
	MsgNoMatchingRows  = "新宿校の生徒が見つかりません。「校舎」列の内容を確認してください。"

	bannerPrefix = "ファイル処理エラー: "
)

// ImportError is a classified pipeline failure.
type ImportError struct {
	Kind    error
	Message string
	Err     error
}

func (e *ImportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Message)
}

func (e *ImportError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func newImportError(kind error, message string, err error) *ImportError {
	return &ImportError{Kind: kind, Message: message, Err: err}
}

// FileReadError classifies a failure to read an upload before decoding.
func FileReadError(err error) error {
	return newImportError(ErrFileRead, MsgFileRead, err)
}

// ErrorKind returns the stable identifier of an ingestion failure, or "" when err
// is not one.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidFileType):
		return "invalid_file_type"
	case errors.Is(err, ErrFileRead):
		return "file_read"
	case errors.Is(err, ErrMissingSheet):
		return "missing_sheet"
	case errors.Is(err, ErrNoDataRows):
		return "no_data_rows"
	case errors.Is(err, ErrNoMatchingRows):
		return "no_matching_rows"
	}
	return ""
}

// BannerMessage is the single line shown in the page's error banner.
func BannerMessage(err error) string {
	var ie *ImportError
	if !errors.As(err, &ie) {
		return bannerPrefix + err.Error()
	}
	if errors.Is(ie.Kind, ErrInvalidFileType) {
		return ie.Message
	}
	return bannerPrefix + ie.Message
}
