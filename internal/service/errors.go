package service

import "errors"

var (
	ErrGameNotFound     = errors.New("game not found")
	ErrGameExists       = errors.New("game already exists")
	ErrNotOwner         = errors.New("player does not own this game")
	ErrConnectionExists = errors.New("connection already exists")
)
