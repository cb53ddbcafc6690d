package terminfo

import "errors"

var (
	ErrTruncated     = errors.New("truncated terminfo file")
	ErrBadMagic      = errors.New("invalid terminfo magic")
	ErrCorruptHeader = errors.New("corrupt terminfo header")
	ErrCorruptString = errors.New("unterminated terminfo string")

	ErrAbsent       = errors.New("capability absent")
	ErrOrdinalRange = errors.New("capability ordinal out of range")
	ErrOffsetRange  = errors.New("string offset out of range")
)
