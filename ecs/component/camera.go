package component

// Camera holds projection settings for a camera entity. The controllers only
// read its world transform.
type Camera struct {
	FovY float64
	Near float64
	Far  float64
}

var CameraComponent = NewComponent[Camera]()
