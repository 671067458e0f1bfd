package system

import (
	"github.com/milk9111/boomrig/common"
	"github.com/milk9111/boomrig/physics"
)

// classifyGround reports whether any contact normal lies within maxAngle
// (radians) of world up. Steeper contacts are sliding contacts and do not
// ground the body.
func classifyGround(contacts []physics.Contact, maxAngle float64) bool {
	for _, c := range contacts {
		if common.AngleBetween(c.Normal, common.WorldUp) < maxAngle {
			return true
		}
	}
	return false
}
