package util

import "errors"

var (
	ErrNotFound           = errors.New("record not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrInvalidBackup      = errors.New("invalid backup file")
	ErrInvalidTransition  = errors.New("invalid analysis status transition")
	ErrAnalysisSuperseded = errors.New("analysis no longer processing")
	ErrInvalidSkill       = errors.New("unknown skill")
	ErrInvalidPosition    = errors.New("unknown position")
	ErrInvalidTheme       = errors.New("unknown theme")
	ErrUnknownFormation   = errors.New("unknown formation")
	ErrUnknownPlan        = errors.New("unknown plan")
	ErrInvalidSignature   = errors.New("invalid webhook signature")
	ErrUpstream           = errors.New("upstream service unavailable")
	ErrStorageDisabled    = errors.New("video storage not configured")
)
