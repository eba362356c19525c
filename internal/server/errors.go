package server

import "errors"

var errRoomNotFound = errors.New("server: room not found")
