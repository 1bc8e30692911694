package view

import (
	"testing"

	"poplobby/internal/app/user"
)

func lobbyUser(rawNick string, state user.State) user.User {
	u := user.New(rawNick, rawNick[4:])
	u.State = state
	return u
}

func TestGroupHuts(t *testing.T) {
	users := []user.User{
		lobbyUser("aaaaAlice", user.State{HutIndex: 2, HutPosition: 1}),
		lobbyUser("aaaaBob", user.State{HutIndex: 1, HutPosition: 0}),
		lobbyUser("aaaaCarol", user.State{HutIndex: 2, HutPosition: 3}),
		lobbyUser("aaaaDave", user.State{HutIndex: 0, HutPosition: 2}),
	}

	huts := GroupHuts(users)
	if len(huts) != 2 {
		t.Fatalf("len(huts) = %d, want 2", len(huts))
	}

	if huts[0].Index != 1 || huts[1].Index != 2 {
		t.Fatalf("hut order = %d, %d; want 1, 2", huts[0].Index, huts[1].Index)
	}

	if huts[0].Positions[0] == nil || huts[0].Positions[0].Nick != "Bob" {
		t.Errorf("hut 1 seat 0 = %+v, want Bob", huts[0].Positions[0])
	}
	if huts[1].Positions[1] == nil || huts[1].Positions[1].Nick != "Alice" {
		t.Errorf("hut 2 seat 1 = %+v, want Alice", huts[1].Positions[1])
	}
	if huts[1].Positions[3] == nil || huts[1].Positions[3].Nick != "Carol" {
		t.Errorf("hut 2 seat 3 = %+v, want Carol", huts[1].Positions[3])
	}
}

func TestGroupHutsSeatCollisionLastWins(t *testing.T) {
	users := []user.User{
		lobbyUser("aaaaAlice", user.State{HutIndex: 1, HutPosition: 2}),
		lobbyUser("aaaaBob", user.State{HutIndex: 1, HutPosition: 2}),
	}

	huts := GroupHuts(users)
	if len(huts) != 1 {
		t.Fatalf("len(huts) = %d, want 1", len(huts))
	}
	if huts[0].Positions[2] == nil || huts[0].Positions[2].Nick != "Bob" {
		t.Errorf("seat 2 = %+v, want the later claimant Bob", huts[0].Positions[2])
	}
}

func TestGroupHutsDropsInvalidSeats(t *testing.T) {
	users := []user.User{
		lobbyUser("aaaaAlice", user.State{HutIndex: 1, HutPosition: 5}),
		lobbyUser("aaaaBob", user.State{HutIndex: 1, HutPosition: -1}),
	}

	huts := GroupHuts(users)
	if len(huts) != 1 {
		t.Fatalf("len(huts) = %d, want 1", len(huts))
	}
	for seat, occupant := range huts[0].Positions {
		if occupant != nil {
			t.Errorf("seat %d occupied by %q, want all seats empty", seat, occupant.Nick)
		}
	}
}

func TestGroupHutsEmptySnapshot(t *testing.T) {
	if huts := GroupHuts(nil); len(huts) != 0 {
		t.Errorf("GroupHuts(nil) = %+v, want empty", huts)
	}
}

func TestGroupGamesBuckets(t *testing.T) {
	users := []user.User{
		lobbyUser("aaaaAlice", user.State{GameIndex: 2, Status: StatusCustom}),
		lobbyUser("aaaaBob", user.State{GameIndex: 1, Status: StatusGameLobby}),
		lobbyUser("aaaaCarol", user.State{GameIndex: 0, Status: StatusGameLobby}),
		lobbyUser("aaaaDave", user.State{GameIndex: 0, Status: 0}),
	}

	grouping := GroupGames(users)

	if len(grouping.Games) != 2 {
		t.Fatalf("len(games) = %d, want 2", len(grouping.Games))
	}
	// The lobby bucket sorts before the real game indexes.
	if grouping.Games[0].Index != GameLobbyIndex || grouping.Games[1].Index != 2 {
		t.Errorf("game order = %d, %d", grouping.Games[0].Index, grouping.Games[1].Index)
	}

	// Bob is in the game lobby, so his game index does not place him in game 1.
	lobby := grouping.Games[0].Players
	if len(lobby) != 2 || lobby[0].Nick != "Bob" || lobby[1].Nick != "Carol" {
		t.Errorf("lobby bucket = %+v, want Bob and Carol", lobby)
	}

	if len(grouping.Waiting) != 1 || grouping.Waiting[0].Nick != "Dave" {
		t.Errorf("waiting = %+v, want Dave", grouping.Waiting)
	}

	if grouping.Playing != 3 {
		t.Errorf("Playing = %d, want 3", grouping.Playing)
	}
}

func TestGroupGamesStatusLobbyWinsOverGameIndex(t *testing.T) {
	users := []user.User{
		lobbyUser("aaaaAlice", user.State{GameIndex: 7, Status: StatusGameLobby}),
	}

	grouping := GroupGames(users)
	if len(grouping.Games) != 1 {
		t.Fatalf("len(games) = %d, want 1", len(grouping.Games))
	}
	if grouping.Games[0].Index != GameLobbyIndex {
		t.Errorf("bucket index = %d, want %d", grouping.Games[0].Index, GameLobbyIndex)
	}
	if len(grouping.Waiting) != 0 {
		t.Errorf("waiting = %+v, want empty", grouping.Waiting)
	}
}

func TestGroupGamesPlayersSortedByStatus(t *testing.T) {
	users := []user.User{
		lobbyUser("aaaaAlice", user.State{GameIndex: 1, Status: StatusCustom}),
		lobbyUser("aaaaBob", user.State{GameIndex: 1, Status: 1}),
		lobbyUser("aaaaCarol", user.State{GameIndex: 1, Status: StatusCustom}),
	}

	grouping := GroupGames(users)
	if len(grouping.Games) != 1 {
		t.Fatalf("len(games) = %d, want 1", len(grouping.Games))
	}

	players := grouping.Games[0].Players
	if players[0].Nick != "Bob" {
		t.Errorf("players[0] = %q, want the lowest status first", players[0].Nick)
	}
	// Equal statuses keep their snapshot order.
	if players[1].Nick != "Alice" || players[2].Nick != "Carol" {
		t.Errorf("equal-status order = %q, %q; want Alice, Carol", players[1].Nick, players[2].Nick)
	}
}

func TestGroupGamesWaitingSortedByPoints(t *testing.T) {
	low := lobbyUser("aaaaLow", user.State{})
	low.Points = 100
	high := lobbyUser("aaaaHigh", user.State{})
	high.Points = 900
	tieA := lobbyUser("aaaaTieA", user.State{})
	tieA.Points = 500
	tieB := lobbyUser("aaaaTieB", user.State{})
	tieB.Points = 500

	grouping := GroupGames([]user.User{low, tieA, high, tieB})

	want := []string{"High", "TieA", "TieB", "Low"}
	if len(grouping.Waiting) != len(want) {
		t.Fatalf("len(waiting) = %d, want %d", len(grouping.Waiting), len(want))
	}
	for i, nick := range want {
		if grouping.Waiting[i].Nick != nick {
			t.Errorf("waiting[%d] = %q, want %q", i, grouping.Waiting[i].Nick, nick)
		}
	}
}

func TestGroupGamesMalformedPresenceWaits(t *testing.T) {
	users := []user.User{
		lobbyUser("aaaaAlice", user.State{GameIndex: -1, Status: -1}),
	}

	grouping := GroupGames(users)
	if len(grouping.Games) != 0 {
		t.Errorf("games = %+v, want none", grouping.Games)
	}
	if len(grouping.Waiting) != 1 {
		t.Errorf("waiting = %+v, want the malformed user", grouping.Waiting)
	}
}
