/*
Package view derives presentation-ready groupings from a user registry snapshot.

This file names the status enum carried in the presence record. Statuses 1-4
are in-game phases; 5 marks the game selection lobby; the rest are idle
statuses chosen by the user.
*/
package view

// Presence status values.
const (
	StatusGameLobby = 5
	StatusAway      = 6
	StatusBusy      = 7
	StatusBRB       = 8
	StatusAFK       = 9
	StatusEating    = 10
	StatusSchool    = 11
	StatusSleeping  = 12
	StatusBot       = 13
	StatusAtWork    = 14
	StatusCustom    = 15
)
