package game

import "errors"

// Action errors. The string values double as the error codes sent to the
// acting client; no failure mutates room state or reaches other members.
var (
	ErrRoomNotFound          = errors.New("room-not-found")
	ErrRoomFull              = errors.New("room-full")
	ErrInvalidCredential     = errors.New("invalid-credential")
	ErrInvalidParameters     = errors.New("invalid-parameters")
	ErrNotMember             = errors.New("not-member")
	ErrNotHost               = errors.New("not-host")
	ErrWrongPhase            = errors.New("wrong-phase")
	ErrInsufficientPlayers   = errors.New("insufficient-players")
	ErrInvalidRegion         = errors.New("invalid-region")
	ErrNoCategoriesAvailable = errors.New("no-categories-available")
)
