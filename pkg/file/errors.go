package file

import "errors"

var (
	ErrInvalidConfig      = errors.New("file: invalid configuration")
	ErrEmptyBlob          = errors.New("file: empty blob")
	ErrUnsupportedContent = errors.New("file: unsupported content type")
	ErrUploadFailed       = errors.New("file: upload failed")
)
