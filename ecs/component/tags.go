package component

// AvatarTag marks the single controlled character.
type AvatarTag struct{}

var AvatarTagComponent = NewComponent[AvatarTag]()

// CameraBoomTag marks the pivot whose rotation the camera rig owns.
type CameraBoomTag struct{}

var CameraBoomTagComponent = NewComponent[CameraBoomTag]()

// SpawnedTag marks bodies created by the cube spawner.
type SpawnedTag struct{}

var SpawnedTagComponent = NewComponent[SpawnedTag]()
