package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

// User-facing messages stay in the product language.
var (
	ErrParamInvalid        = errors.New("parametros invalidos")
	ErrUserNotFound        = errors.New("el usuario no existe")
	ErrUserBan             = errors.New("el usuario esta suspendido")
	ErrUserExist           = errors.New("el nombre de usuario ya existe")
	ErrPasswordIncorrect   = errors.New("contrasena incorrecta")
	ErrUserFollowSelf      = errors.New("no puedes seguirte a ti mismo")
	ErrPostNotFound        = errors.New("la publicacion no existe")
	ErrPostRejected        = errors.New("la publicacion fue rechazada por moderacion")
	ErrCommentNotFound     = errors.New("el comentario no existe")
	ErrNotificationMissing = errors.New("la notificacion no existe")
	ErrActionDuplicate     = errors.New("accion duplicada")
	ErrReviewItemNotFound  = errors.New("el elemento de revision no existe")
	UnauthorizedError      = errors.New("no autorizado")
	UnExpectedError        = errors.New("error del sistema, intenta mas tarde")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:        BadRequest,
	ErrUserNotFound:        NotFound,
	ErrUserBan:             Unauthorized,
	ErrUserExist:           BadRequest,
	ErrPasswordIncorrect:   Unauthorized,
	ErrUserFollowSelf:      BadRequest,
	ErrPostNotFound:        NotFound,
	ErrPostRejected:        BadRequest,
	ErrCommentNotFound:     NotFound,
	ErrNotificationMissing: NotFound,
	ErrActionDuplicate:     BadRequest,
	ErrReviewItemNotFound:  NotFound,
	UnauthorizedError:      Unauthorized,
	UnExpectedError:        InternalServerError,
}
