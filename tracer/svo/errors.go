package svo

import "errors"

var (
	ErrNoSceneData  = errors.New("svo: no scene data uploaded")
	ErrNoCameraData = errors.New("svo: no camera data uploaded")
)
