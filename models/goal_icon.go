// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// GoalIcon is the key of a goal's icon in the fixed icon catalogue.
type GoalIcon string

const (
	GoalIconPiggyBank     GoalIcon = "piggy-bank"
	GoalIconTarget        GoalIcon = "target"
	GoalIconLaptop        GoalIcon = "laptop"
	GoalIconPlane         GoalIcon = "plane"
	GoalIconHome          GoalIcon = "home"
	GoalIconCar           GoalIcon = "car"
	GoalIconGift          GoalIcon = "gift"
	GoalIconGraduationCap GoalIcon = "graduation-cap"
	GoalIconHeart         GoalIcon = "heart"
	GoalIconWallet        GoalIcon = "wallet"

	DefaultGoalIcon = GoalIconPiggyBank
)

// GoalIcons lists the catalogue in display order.
var GoalIcons = []GoalIcon{
	GoalIconPiggyBank,
	GoalIconTarget,
	GoalIconLaptop,
	GoalIconPlane,
	GoalIconHome,
	GoalIconCar,
	GoalIconGift,
	GoalIconGraduationCap,
	GoalIconHeart,
	GoalIconWallet,
}

// Valid reports whether i is a catalogue key.
func (i GoalIcon) Valid() bool {
	for _, known := range GoalIcons {
		if i == known {
			return true
		}
	}
	return false
}

// OrDefault resolves unknown or empty keys to DefaultGoalIcon for display.
// Stored values are never rewritten.
func (i GoalIcon) OrDefault() GoalIcon {
	if i.Valid() {
		return i
	}
	return DefaultGoalIcon
}
