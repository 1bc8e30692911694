/*
Package view derives presentation-ready groupings from a user registry snapshot.

This file implements the two aggregations: hut occupancy (fixed 4-seat huts
keyed by hut index) and game rosters (keyed by game index, with a synthetic
lobby bucket and a separate waiting list). Both are pure functions recomputed
from a full snapshot; nothing here mutates registry-owned state.
*/
package view

import (
	"sort"

	"poplobby/internal/app/user"
)

// HutSeats is the fixed number of seats in a hut.
const HutSeats = 4

// GameLobbyIndex is the synthetic bucket index for users sitting in the game
// selection lobby without a game index yet.
const GameLobbyIndex = -1

// Hut is a 4-seat sub-room. A nil seat is empty.
type Hut struct {
	// Index is the hut index (always >= 1).
	Index int `json:"index"`

	// Positions holds the seat occupants by hut position.
	Positions [HutSeats]*user.User `json:"positions"`
}

// Game is one game roster.
type Game struct {
	// Index is the game index, or GameLobbyIndex for the lobby bucket.
	Index int `json:"index"`

	// Players is the roster, sorted ascending by status.
	Players []user.User `json:"players"`
}

// GameGrouping is the full game-side derivation of one snapshot.
type GameGrouping struct {
	// Games holds the buckets sorted ascending by index; the lobby bucket
	// sorts first.
	Games []Game `json:"games"`

	// Waiting lists users idling outside any game, sorted descending by
	// points with ties keeping their snapshot order.
	Waiting []user.User `json:"waiting"`

	// Playing is the total number of users across all game buckets.
	Playing int `json:"playing"`
}

// GroupHuts builds the hut occupancy from a snapshot. A user belongs to a hut
// iff its hut index is 1 or more; seats outside 0-3 are dropped. A later user
// claiming an occupied seat overwrites it. Huts are returned sorted ascending
// by index.
func GroupHuts(users []user.User) []Hut {
	var huts []Hut

	for i := range users {
		u := &users[i]
		if u.HutIndex < 1 {
			continue
		}

		hut := getOrCreateHut(&huts, u.HutIndex)
		if u.HutPosition >= 0 && u.HutPosition < HutSeats {
			hut.Positions[u.HutPosition] = u
		}
	}

	sort.Slice(huts, func(a, b int) bool {
		return huts[a].Index < huts[b].Index
	})

	return huts
}

// getOrCreateHut finds the hut with the given index, appending a fresh one
// when missing.
func getOrCreateHut(huts *[]Hut, index int) *Hut {
	for i := range *huts {
		if (*huts)[i].Index == index {
			return &(*huts)[i]
		}
	}

	*huts = append(*huts, Hut{Index: index})
	return &(*huts)[len(*huts)-1]
}

// GroupGames builds the game-side derivation from a snapshot. A user with
// status StatusGameLobby always lands in the lobby bucket regardless of game
// index; a user without a game index and any other status lands in the
// waiting list.
func GroupGames(users []user.User) GameGrouping {
	grouping := GameGrouping{}

	for _, u := range users {
		if u.GameIndex <= 0 && u.Status != StatusGameLobby {
			grouping.Waiting = append(grouping.Waiting, u)
			continue
		}

		// Status wins over game index: a game-lobby user belongs to the
		// lobby bucket even while still carrying a stale game index.
		index := u.GameIndex
		if u.Status == StatusGameLobby || index <= 0 {
			index = GameLobbyIndex
		}

		game := getOrCreateGame(&grouping.Games, index)
		game.Players = append(game.Players, u)
	}

	sort.SliceStable(grouping.Waiting, func(a, b int) bool {
		return grouping.Waiting[a].Points > grouping.Waiting[b].Points
	})

	sort.Slice(grouping.Games, func(a, b int) bool {
		return grouping.Games[a].Index < grouping.Games[b].Index
	})

	for i := range grouping.Games {
		players := grouping.Games[i].Players
		sort.SliceStable(players, func(a, b int) bool {
			return players[a].Status < players[b].Status
		})
		grouping.Playing += len(players)
	}

	return grouping
}

// getOrCreateGame finds the game bucket with the given index, appending a
// fresh one when missing.
func getOrCreateGame(games *[]Game, index int) *Game {
	for i := range *games {
		if (*games)[i].Index == index {
			return &(*games)[i]
		}
	}

	*games = append(*games, Game{Index: index})
	return &(*games)[len(*games)-1]
}
