package service

import (
	"Portfolio/internal/pkg/minio"
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	NotImplemented      = 501
	BadGateway          = 502
	InternalServerError = 500
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrStore             = errors.New("asset store failure")
	ErrRepository        = errors.New("repository failure")
	ErrSession           = errors.New("not authenticated or session expired")
	ErrNotFound          = errors.New("item not found")
	ErrPostNotFound      = errors.New("Post not found or not published.")
	ErrEditUnavailable   = errors.New("Edit functionality coming soon!")
	ErrDeleteDeclined    = errors.New("delete cancelled")
	ErrParamInvalid      = errors.New("invalid parameters")
	ErrPasswordIncorrect = errors.New("invalid login credentials")
	ErrFileNotSupported  = minio.ErrFileNotSupported
	ErrFileTooLarge      = minio.ErrFileTooLarge
	UnExpectedError      = errors.New("unexpected error, please try again later")
)

// ErrorMap 业务错误到返回码，按顺序用 errors.Is 匹配
var ErrorMap = []struct {
	Err  error
	Code int
}{
	{ErrParamInvalid, BadRequest},
	{ErrValidation, BadRequest},
	{ErrFileNotSupported, BadRequest},
	{ErrFileTooLarge, BadRequest},
	{ErrDeleteDeclined, BadRequest},
	{ErrPasswordIncorrect, Unauthorized},
	{ErrSession, Unauthorized},
	{ErrPostNotFound, NotFound},
	{ErrNotFound, NotFound},
	{ErrEditUnavailable, NotImplemented},
	{ErrStore, BadGateway},
	{ErrRepository, InternalServerError},
	{UnExpectedError, InternalServerError},
}

// CodeOf 返回错误对应的业务码，未登记的错误返回 false
func CodeOf(err error) (int, bool) {
	for _, m := range ErrorMap {
		if errors.Is(err, m.Err) {
			return m.Code, true
		}
	}
	return 0, false
}

// userError 对外展示 msg，同时可以被 errors.Is 识别为 kind 与 cause
type userError struct {
	kind  error
	msg   string
	cause error
}

func (e *userError) Error() string {
	return e.msg
}

func (e *userError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.cause}
}

func newError(kind error, msg string, cause error) error {
	if msg == "" {
		msg = kind.Error()
	}
	return &userError{kind: kind, msg: msg, cause: cause}
}

// storeError 上传失败时直接展示存储给出的错误文本
func storeError(cause error) error {
	return newError(ErrStore, cause.Error(), cause)
}

func repositoryError(cause error) error {
	return newError(ErrRepository, cause.Error(), cause)
}
