package serializer

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/subtrackhq/subtrack/internal/pkg/apperr"
)

var log = zap.NewNop()

// SetLogger wires the package logger; called once from the router.
func SetLogger(l *zap.Logger) {
	if l != nil {
		log = l
	}
}

// Response
type Response struct {
	Code  int         `json:"code"`
	Data  interface{} `json:"data,omitempty"`
	Msg   string      `json:"msg"`
	Error string      `json:"error,omitempty"`
}

// Err
func Err(errCode int, msg string, err error) Response {
	res := Response{
		Code: errCode,
		Msg:  msg,
	}
	// development mode, show error detail
	if err != nil && gin.Mode() != gin.ReleaseMode {
		res.Error = fmt.Sprintf("%+v", err)
	}
	return res
}

// DBErr
func DBErr(msg string, err error) Response {
	if msg == "" {
		msg = "database error"
	}
	return Err(http.StatusInternalServerError, msg, err)
}

// ParamErr
func ParamErr(msg string, err error) Response {
	if msg == "" {
		msg = "parameter error"
	}
	return Err(http.StatusBadRequest, msg, err)
}

// AuthErr
func AuthErr(msg string) Response {
	if msg == "" {
		msg = "authentication error"
	}
	return Err(http.StatusUnauthorized, msg, nil)
}

// AppErr translates a service error into an HTTP status and envelope.
// Invitation-token resolution failures all serialize to the same generic
// message so callers cannot probe how close a token came to matching; the
// distinct kinds are logged server-side only.
func AppErr(err error) (int, Response) {
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		res := Err(http.StatusBadRequest, "validation failed", nil)
		res.Data = ve.Fields
		return http.StatusBadRequest, res
	}

	if apperr.IsTokenResolution(err) {
		log.Sugar().Infow("invitation token rejected", "reason", err.Error())
		return http.StatusBadRequest, Err(http.StatusBadRequest, apperr.ErrInvalidToken.Msg, nil)
	}

	var ae *apperr.Error
	if errors.As(err, &ae) {
		switch ae.Code {
		case apperr.ErrNotFound.Code:
			return http.StatusNotFound, Err(http.StatusNotFound, ae.Msg, nil)
		case apperr.ErrForbidden.Code:
			return http.StatusForbidden, Err(http.StatusForbidden, ae.Msg, nil)
		case apperr.ErrAlreadyMember.Code, apperr.ErrDuplicateInvitation.Code, apperr.ErrAlreadyProcessed.Code:
			return http.StatusConflict, Err(http.StatusConflict, ae.Msg, nil)
		case apperr.ErrStorage.Code:
			return http.StatusInternalServerError, DBErr("", err)
		}
	}

	return http.StatusInternalServerError, Err(http.StatusInternalServerError, "internal error", err)
}
